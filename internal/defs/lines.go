package defs

import (
	"bufio"
	"io"
)

// EachLine calls fn for every line of r, terminator included. A final line
// without a terminator is delivered as is. Iteration stops at the first
// error returned by fn or by r.
func EachLine(r io.Reader, fn func(line string) error) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if ferr := fn(line); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
