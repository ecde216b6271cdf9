package ledger

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const maxMessageLine = 1024 * 1024

// ReadMessages splits a notification dump into messages. By default every
// non-blank line is one message. With multiline set, messages are blocks of
// lines separated by blank lines.
func ReadMessages(r io.Reader, multiline bool) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageLine)

	var (
		messages []string
		block    []string
	)
	flush := func() {
		if len(block) > 0 {
			messages = append(messages, strings.Join(block, "\n"))
			block = block[:0]
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			flush()
		case multiline:
			block = append(block, line)
		default:
			messages = append(messages, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	flush()

	return messages, nil
}
