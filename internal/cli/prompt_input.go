package cli

import (
	"fmt"
	"io"
	"strings"
)

func promptYesNoIO(in io.Reader, out io.Writer, message string) bool {
	return promptYesNoWithDefaultIO(in, out, message, false)
}

func promptYesNoWithDefaultIO(in io.Reader, out io.Writer, message string, defaultYes bool) bool {
	if out != nil {
		fmt.Fprint(out, message)
	}

	text, err := readPromptLine(in)
	if err != nil {
		return false
	}

	text = strings.TrimSpace(strings.ToLower(text))
	if text == "" {
		return defaultYes
	}
	return text == "y" || text == "yes"
}

// readPromptLine reads one line from in.
func readPromptLine(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}
	return (&lineReader{in: in}).ReadLine()
}

// lineReader reads lines ending in LF, CR or CRLF so Enter works in normal and
// raw terminal modes. It reads one byte at a time and never buffers past a line.
type lineReader struct {
	in      io.Reader
	afterCR bool
}

func (r *lineReader) ReadLine() (string, error) {
	var buf []byte
	var one [1]byte

	for {
		n, err := r.in.Read(one[:])
		if n > 0 {
			c := one[0]
			skip := c == '\n' && r.afterCR && len(buf) == 0
			r.afterCR = c == '\r'
			switch {
			case skip:
			case c == '\n' || c == '\r':
				return string(buf), nil
			default:
				buf = append(buf, c)
			}
		}

		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}
