package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Op byte

const (
	OpGet   Op = 'g'
	OpOpen  Op = 'o'
	OpFlag  Op = 'f'
	OpChord Op = 'c'
	OpNew   Op = 'n'
)

// Maps known commands to the allowed numbers of arguments
var commandNargs = map[Op][]int{
	OpGet:   {0},
	OpOpen:  {2},
	OpFlag:  {2},
	OpChord: {2},
	OpNew:   {0, 2},
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("invalid number of arguments")
	ErrOutOfBounds    = errors.New("invalid square coordinates")
)

// Command is one line of the text protocol shared by the websocket and
// terminal front ends:
//
//	g        fetch the current state
//	o x y    open a cell
//	f x y    toggle a flag
//	c x y    chord around an opened cell
//	n [w h]  start over, optionally with a new size
type Command struct {
	Op   Op
	X, Y int
	// set for "n w h"
	Resize bool
}

// Command implements [fmt.Stringer]
func (c Command) String() string {
	switch {
	case c.Op == OpGet || (c.Op == OpNew && !c.Resize):
		return string(c.Op)
	default:
		return fmt.Sprintf("%c %d %d", c.Op, c.X, c.Y)
	}
}

func parseXY(args []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("%w: first argument must be an int", ErrBadArguments)
		return
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("%w: second argument must be an int", ErrBadArguments)
		return
	}
	return
}

func ParseCommand(line string) (cmd Command, err error) {
	parts := strings.Fields(line)
	if len(parts) == 0 || len(parts[0]) != 1 {
		return cmd, ErrUnknownCommand
	}
	cmd.Op = Op(parts[0][0])
	nargs, ok := commandNargs[cmd.Op]
	if !ok {
		return cmd, ErrUnknownCommand
	}
	args := parts[1:]
	allowed := false
	for _, n := range nargs {
		allowed = allowed || n == len(args)
	}
	if !allowed {
		return cmd, ErrBadArguments
	}
	if len(args) == 2 {
		cmd.X, cmd.Y, err = parseXY(args)
		cmd.Resize = cmd.Op == OpNew
	}
	return cmd, err
}
