package serial

import (
	"bufio"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrRemote marks an "error: ..." reply from the firmware
var ErrRemote = errors.New("firmware error")

// Console sends one command line at a time and waits for its reply line
type Console struct {
	mu     sync.Mutex
	port   Port
	reader *bufio.Reader
	logger *zap.SugaredLogger
}

// NewConsole wraps an open port
func NewConsole(port Port, logger *zap.SugaredLogger) *Console {
	return &Console{
		port:   port,
		reader: bufio.NewReader(port),
		logger: logger,
	}
}

// Send writes line and returns the firmware's reply without the line
// terminator. An "error: ..." reply is returned as an error wrapping
// ErrRemote.
func (c *Console) Send(line string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line = strings.TrimRight(line, "\r\n")
	if strings.ContainsAny(line, "\r\n") {
		return "", errors.Errorf("command %q spans several lines", line)
	}
	if _, err := c.port.Write([]byte(line + "\n")); err != nil {
		return "", errors.Wrap(err, "writing command")
	}
	c.logger.Debugw("sent", "line", line)

	reply, err := c.reader.ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "reading reply")
	}
	reply = strings.TrimRight(reply, "\r\n")
	c.logger.Debugw("received", "line", reply)

	if msg, ok := strings.CutPrefix(reply, "error: "); ok {
		return reply, errors.Wrap(ErrRemote, msg)
	}
	return reply, nil
}

// Close closes the underlying port
func (c *Console) Close() error {
	return c.port.Close()
}
