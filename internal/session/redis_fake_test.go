package session

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeRedis speaks enough RESP2 for RedisStore: PING, SET, GETEX and DEL.
// Expiry arguments are recorded, not enforced.
type fakeRedis struct {
	ln net.Listener

	mu     sync.Mutex
	values map[string]string
	expiry map[string]string
}

func newFakeRedis(t *testing.T) *fakeRedis {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	f := &fakeRedis{ln: ln, values: make(map[string]string), expiry: make(map[string]string)}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				f.serve(conn)
			}()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		wg.Wait()
	})
	return f
}

func (f *fakeRedis) Addr() string { return f.ln.Addr().String() }

// ttl returns the expiry arguments of the last command that set one.
func (f *fakeRedis) ttl(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.expiry[key]
}

func (f *fakeRedis) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}
		if _, err := io.WriteString(conn, f.exec(args)); err != nil {
			return
		}
	}
}

func (f *fakeRedis) exec(args []string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch strings.ToLower(args[0]) {
	case "ping":
		return "+PONG\r\n"
	case "set":
		if len(args) < 3 {
			return "-ERR wrong number of arguments\r\n"
		}
		f.values[args[1]] = args[2]
		f.expiry[args[1]] = strings.ToLower(strings.Join(args[3:], " "))
		return "+OK\r\n"
	case "getex":
		v, ok := f.values[args[1]]
		if !ok {
			return "$-1\r\n"
		}
		f.expiry[args[1]] = strings.ToLower(strings.Join(args[2:], " "))
		return fmt.Sprintf("$%d\r\n%s\r\n", len(v), v)
	case "del":
		n := 0
		for _, k := range args[1:] {
			if _, ok := f.values[k]; ok {
				delete(f.values, k)
				delete(f.expiry, k)
				n++
			}
		}
		return fmt.Sprintf(":%d\r\n", n)
	default:
		return fmt.Sprintf("-ERR unknown command '%s'\r\n", args[0])
	}
}

// readCommand reads one RESP array of bulk strings.
func readCommand(r *bufio.Reader) ([]string, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(line, "*") {
		return nil, fmt.Errorf("expected array, got %q", line)
	}
	n, err := strconv.Atoi(line[1:])
	if err != nil || n < 1 {
		return nil, fmt.Errorf("bad array header %q", line)
	}

	args := make([]string, n)
	for i := range args {
		head, err := readLine(r)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(head, "$") {
			return nil, fmt.Errorf("expected bulk string, got %q", head)
		}
		size, err := strconv.Atoi(head[1:])
		if err != nil || size < 0 {
			return nil, fmt.Errorf("bad bulk header %q", head)
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args[i] = string(buf[:size])
	}
	return args, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
