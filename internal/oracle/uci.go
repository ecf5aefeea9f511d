package oracle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/lgbarn/chessgame-go/internal/chess"
	apperrors "github.com/lgbarn/chessgame-go/internal/errors"
)

// DefaultDepth is the search depth requested from a UCI engine.
const DefaultDepth = 15

const (
	stopGrace  = 2 * time.Second // Wait for bestmove after "stop"
	closeGrace = 2 * time.Second // Wait for exit after "quit" before killing
)

// Evaluation holds the engine's report for the last searched position.
type Evaluation struct {
	Score    int    // Centipawns from the side to move's view
	IsMate   bool   // True when the score is a mate distance
	MateIn   int    // Moves to mate, negative when being mated
	Depth    int    // Deepest completed depth
	BestMove string // Coordinate text from the bestmove line
}

// FormatEvaluation renders an evaluation as "+1.23" or "-M5".
func FormatEvaluation(eval *Evaluation) string {
	if eval.IsMate {
		if eval.MateIn < 0 {
			return fmt.Sprintf("-M%d", -eval.MateIn)
		}
		return fmt.Sprintf("+M%d", eval.MateIn)
	}
	sign := "+"
	score := eval.Score
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}

// UCIEngine drives an external engine process over the UCI protocol.
// Calls are serialised; the process handles one search at a time.
type UCIEngine struct {
	path  string
	depth int

	stopGrace  time.Duration
	closeGrace time.Duration

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	lines  chan string
	last   Evaluation
	closed bool
	broken error // Set when an abandoned search could not be stopped
}

// NewUCIEngine starts the engine binary and completes the uci/isready
// handshake. A depth of zero selects DefaultDepth.
func NewUCIEngine(ctx context.Context, path string, depth int, args ...string) (*UCIEngine, error) {
	if depth <= 0 {
		depth = DefaultDepth
	}
	cmd := exec.Command(path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, unavailable(err, "stdin for %s", path)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, unavailable(err, "stdout for %s", path)
	}
	if err := cmd.Start(); err != nil {
		return nil, unavailable(err, "start %s", path)
	}

	e := &UCIEngine{
		path:       path,
		depth:      depth,
		stopGrace:  stopGrace,
		closeGrace: closeGrace,
		cmd:        cmd,
		stdin:      stdin,
		lines:      make(chan string, 64),
	}
	go e.readLines(stdout)

	if err := e.handshake(ctx); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *UCIEngine) readLines(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		e.lines <- strings.TrimSpace(scanner.Text())
	}
	close(e.lines)
}

func (e *UCIEngine) handshake(ctx context.Context) error {
	if err := e.send("uci"); err != nil {
		return err
	}
	if _, err := e.waitFor(ctx, "uciok"); err != nil {
		return err
	}
	if err := e.send("isready"); err != nil {
		return err
	}
	_, err := e.waitFor(ctx, "readyok")
	return err
}

// BestMove sends the position and a fixed-depth search, then waits for the
// bestmove reply. Info lines seen on the way update Evaluation. When ctx
// ends first the search is stopped and its reply discarded.
func (e *UCIEngine) BestMove(ctx context.Context, fen string) (chess.Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return chess.NullMove, errors.Wrapf(apperrors.ErrOracleUnavailable, "%s is closed", e.path)
	}
	if e.broken != nil {
		return chess.NullMove, e.broken
	}
	if err := e.send("position fen " + fen); err != nil {
		return chess.NullMove, err
	}
	if err := e.send("go depth " + strconv.Itoa(e.depth)); err != nil {
		return chess.NullMove, err
	}

	eval := Evaluation{}
	line, err := e.waitForSearch(ctx, &eval)
	if err != nil {
		if ctx.Err() != nil {
			e.abandonSearch()
		}
		return chess.NullMove, err
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return chess.NullMove, errors.Wrapf(apperrors.ErrOracleUnavailable, "bad reply %q", line)
	}
	eval.BestMove = fields[1]
	e.last = eval

	move, err := chess.ParseMove(fields[1])
	if err != nil {
		return chess.NullMove, errors.WithMessage(apperrors.ErrOracleUnavailable, err.Error())
	}
	return move, nil
}

// Evaluation returns the report of the most recent search.
func (e *UCIEngine) Evaluation() Evaluation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

func (e *UCIEngine) waitForSearch(ctx context.Context, eval *Evaluation) (string, error) {
	for {
		line, err := e.next(ctx)
		if err != nil {
			return "", err
		}
		switch {
		case strings.HasPrefix(line, "info"):
			e.parseInfo(line, eval)
		case strings.HasPrefix(line, "bestmove"):
			return line, nil
		}
	}
}

// abandonSearch sends stop and reads up to the search's bestmove so the
// next search does not take it for its own. An engine that does not answer
// within stopGrace is unusable from then on.
func (e *UCIEngine) abandonSearch() {
	if err := e.send("stop"); err != nil {
		e.broken = err
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.stopGrace)
	defer cancel()
	if _, err := e.waitForSearch(ctx, &Evaluation{}); err != nil {
		e.broken = errors.Wrapf(apperrors.ErrOracleUnavailable, "%s did not stop: %v", e.path, err)
	}
}

// parseInfo copies depth and score from an info line into eval. Fields
// missing from the line leave eval unchanged.
func (e *UCIEngine) parseInfo(line string, eval *Evaluation) {
	fields := strings.Fields(line)
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			if i+1 < len(fields) {
				if d, err := strconv.Atoi(fields[i+1]); err == nil {
					eval.Depth = d
				}
				i++
			}
		case "score":
			if i+2 < len(fields) {
				n, err := strconv.Atoi(fields[i+2])
				if err != nil {
					continue
				}
				switch fields[i+1] {
				case "cp":
					eval.Score = n
					eval.IsMate = false
				case "mate":
					eval.MateIn = n
					eval.IsMate = true
				}
				i += 2
			}
		case "pv":
			return
		}
	}
}

func (e *UCIEngine) waitFor(ctx context.Context, token string) (string, error) {
	for {
		line, err := e.next(ctx)
		if err != nil {
			return "", err
		}
		if line == token {
			return line, nil
		}
	}
}

func (e *UCIEngine) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", errors.Wrapf(apperrors.ErrOracleUnavailable, "%s: %v", e.path, ctx.Err())
	case line, ok := <-e.lines:
		if !ok {
			return "", errors.Wrapf(apperrors.ErrOracleUnavailable, "%s exited", e.path)
		}
		return line, nil
	}
}

func (e *UCIEngine) send(command string) error {
	if _, err := io.WriteString(e.stdin, command+"\n"); err != nil {
		return unavailable(err, "write to %s", e.path)
	}
	return nil
}

// Close sends quit and waits for the process to exit, killing it after
// closeGrace. It is safe to call more than once.
func (e *UCIEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true

	_ = e.send("quit")
	_ = e.stdin.Close()
	// Wait may only run once the reader has seen EOF.
	drained := make(chan struct{})
	go func() {
		for range e.lines {
		}
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(e.closeGrace):
		_ = e.cmd.Process.Kill()
		<-drained
	}
	if err := e.cmd.Wait(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func unavailable(err error, format string, args ...interface{}) error {
	return errors.Wrapf(apperrors.ErrOracleUnavailable, format+": %v", append(args, err)...)
}
