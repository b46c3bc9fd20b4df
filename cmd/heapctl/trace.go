package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joshuapare/heapkit/heap"
)

// traceResult is what replaying a trace leaves behind.
type traceResult struct {
	h    heap.Heap
	ops  int
	live map[string]heap.Ptr
}

// replayTrace parses the trace at path and applies every operation to a
// fresh heap for the selected strategy.
func replayTrace(path string) (*traceResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := newHeap()
	if err != nil {
		return nil, err
	}

	res := &traceResult{h: h, live: make(map[string]heap.Ptr)}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := res.apply(strings.Fields(line)); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		res.ops++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *traceResult) apply(fields []string) error {
	op := fields[0]
	switch op {
	case "alloc":
		name, args, err := opArgs(fields, 1)
		if err != nil {
			return err
		}
		p, _, err := r.h.Alloc(args[0])
		if err != nil {
			return fmt.Errorf("alloc %s: %w", name, err)
		}
		r.live[name] = p
		printVerbose("alloc %s -> %d\n", name, p)

	case "calloc":
		name, args, err := opArgs(fields, 2)
		if err != nil {
			return err
		}
		p, _, err := r.h.Calloc(args[0], args[1])
		if err != nil {
			return fmt.Errorf("calloc %s: %w", name, err)
		}
		r.live[name] = p
		printVerbose("calloc %s -> %d\n", name, p)

	case "realloc":
		name, args, err := opArgs(fields, 1)
		if err != nil {
			return err
		}
		p, ok := r.live[name]
		if !ok {
			return fmt.Errorf("realloc %s: unknown name", name)
		}
		newP, _, err := r.h.Realloc(p, args[0])
		if err != nil {
			return fmt.Errorf("realloc %s: %w", name, err)
		}
		if newP == heap.NilPtr {
			delete(r.live, name)
		} else {
			r.live[name] = newP
		}
		printVerbose("realloc %s -> %d\n", name, newP)

	case "free":
		name, _, err := opArgs(fields, 0)
		if err != nil {
			return err
		}
		p, ok := r.live[name]
		if !ok {
			return fmt.Errorf("free %s: unknown name", name)
		}
		if err := r.h.Free(p); err != nil {
			return fmt.Errorf("free %s: %w", name, err)
		}
		delete(r.live, name)
		printVerbose("free %s\n", name)

	case "fill":
		name, args, err := opArgs(fields, 1)
		if err != nil {
			return err
		}
		p, ok := r.live[name]
		if !ok {
			return fmt.Errorf("fill %s: unknown name", name)
		}
		buf := r.h.Payload(p)
		for i := range buf {
			buf[i] = byte(args[0])
		}
		printVerbose("fill %s with 0x%02X\n", name, args[0])

	default:
		return fmt.Errorf("unknown operation %q", op)
	}
	return nil
}

// opArgs pulls the block name and n integer arguments out of a trace
// line's fields.
func opArgs(fields []string, n int) (string, []int, error) {
	if len(fields) != n+2 {
		return "", nil, fmt.Errorf("%s: want %d arguments, got %d", fields[0], n+1, len(fields)-1)
	}
	name := fields[1]
	args := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(fields[i+2])
		if err != nil {
			return "", nil, fmt.Errorf("%s %s: bad argument %q", fields[0], name, fields[i+2])
		}
		args[i] = v
	}
	return name, args, nil
}
