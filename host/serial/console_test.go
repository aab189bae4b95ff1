package serial

import (
	"bufio"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// pipePort is one end of an in-memory full-duplex link
type pipePort struct {
	net.Conn
}

func (p pipePort) Flush() error { return nil }

// fakeFirmware answers each line using reply
func fakeFirmware(t *testing.T, conn net.Conn, reply func(string) string) {
	t.Helper()
	go func() {
		r := bufio.NewReader(conn)
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			if _, err := io.WriteString(conn, reply(strings.TrimSpace(line))+"\r\n"); err != nil {
				return
			}
		}
	}()
}

func newTestConsole(t *testing.T, reply func(string) string) *Console {
	t.Helper()
	host, mcu := net.Pipe()
	fakeFirmware(t, mcu, reply)
	c := NewConsole(pipePort{host}, zap.NewNop().Sugar())
	t.Cleanup(func() {
		c.Close()
		mcu.Close()
	})
	return c
}

func TestConsoleSend(t *testing.T) {
	c := newTestConsole(t, func(line string) string {
		switch line {
		case "status":
			return "idle"
		case "fd 10":
			return "ok"
		default:
			return "error: " + line + ": unknown command"
		}
	})

	reply, err := c.Send("status")
	require.NoError(t, err)
	assert.Equal(t, "idle", reply)

	reply, err = c.Send("fd 10\n")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)

	reply, err = c.Send("hop")
	assert.ErrorIs(t, err, ErrRemote)
	assert.Contains(t, err.Error(), "hop: unknown command")
	assert.Equal(t, "error: hop: unknown command", reply)
}

func TestConsoleRejectsMultiLine(t *testing.T) {
	c := newTestConsole(t, func(string) string { return "ok" })

	_, err := c.Send("fd 10\nfd 20")
	assert.Error(t, err)
}

func TestConsoleClosedPort(t *testing.T) {
	host, mcu := net.Pipe()
	mcu.Close()
	c := NewConsole(pipePort{host}, zap.NewNop().Sugar())
	defer c.Close()

	_, err := c.Send("status")
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	assert.Equal(t, "/dev/ttyACM0", cfg.Device)
	assert.Equal(t, 115200, cfg.Baud)
	assert.Zero(t, cfg.ReadTimeout)
}

func TestOpenNilConfig(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)
}

func TestNativePortClosed(t *testing.T) {
	p := &NativePort{device: "/dev/ttyACM0"}

	_, err := p.Write([]byte("fd 10\n"))
	assert.EqualError(t, err, "/dev/ttyACM0 is closed")
	_, err = p.Read(make([]byte, 8))
	assert.Error(t, err)
	assert.Error(t, p.Flush())
	assert.NoError(t, p.Close())
}
