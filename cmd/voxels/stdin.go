package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/talonforge/voxelcore/pkg/backbone"
	"github.com/talonforge/voxelcore/pkg/loop"

	"openglhelper"
)

// startStdinReader reads newline-delimited commands off stdin on its own
// goroutine and forwards them over a channel, the single cross-thread
// boundary into the render/GL thread's command loop.
func startStdinReader() <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// drainCommands applies every command queued since the last call without
// blocking, so a quiet stdin never stalls the render loop.
func drainCommands(cmds <-chan string, win *openglhelper.Window, l *loop.Loop, bb *backbone.Backbone) {
	for {
		select {
		case line, ok := <-cmds:
			if !ok {
				win.GLFWWindow().SetShouldClose(true)
				return
			}
			runCommand(strings.TrimSpace(line), win, l, bb)
		default:
			return
		}
	}
}

func runCommand(line string, win *openglhelper.Window, l *loop.Loop, bb *backbone.Backbone) {
	if line == "" {
		return
	}

	fields := strings.SplitN(line, " ", 2)
	cmd := fields[0]
	var arg string
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case "stop":
		win.GLFWWindow().SetShouldClose(true)

	case "echo":
		logger.Println(fmt.Sprint(arg))

	case "loc":
		if err := bb.SetLocation(arg); err != nil {
			logger.Printf("rejecting loc %q: %v", arg, err)
		}

	case "set-tps":
		tps, err := strconv.Atoi(arg)
		if err != nil || tps <= 0 {
			logger.Printf("rejecting set-tps %q: not a positive integer", arg)
			return
		}
		l.SetTicksPerSecond(tps)

	default:
		logger.Printf("unknown command %q", cmd)
	}
}
