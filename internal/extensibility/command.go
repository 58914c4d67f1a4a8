package extensibility

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/comalice/vendingfsm/internal/primitives"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgument    = errors.New("bad argument")
)

// ParseEvent turns one command line into an event. Accepted forms:
//
//	insert <amount>    (alias: coin)
//	select [product]   (alias: buy; product defaults to defaultProduct)
//	dispense
func ParseEvent(line, defaultProduct string) (primitives.Event, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return primitives.Event{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}

	switch strings.ToLower(fields[0]) {
	case "insert", "coin":
		if len(fields) != 2 {
			return primitives.Event{}, fmt.Errorf("%w: usage: insert <amount>", ErrBadArgument)
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil {
			return primitives.Event{}, fmt.Errorf("%w: amount %q: %w", ErrBadArgument, fields[1], err)
		}
		return primitives.InsertCoin(amount), nil
	case "select", "buy":
		product := defaultProduct
		if len(fields) > 1 {
			product = strings.Join(fields[1:], " ")
		}
		return primitives.SelectProduct(product), nil
	case "dispense":
		if len(fields) != 1 {
			return primitives.Event{}, fmt.Errorf("%w: dispense takes no arguments", ErrBadArgument)
		}
		return primitives.Dispense(), nil
	default:
		return primitives.Event{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
}

// ParseScript reads one command per line. Blank lines and lines starting with
// '#' are skipped. Errors carry the 1-based line number.
func ParseScript(r io.Reader, defaultProduct string) ([]primitives.Event, error) {
	var events []primitives.Event
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := ParseEvent(line, defaultProduct)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return events, nil
}
