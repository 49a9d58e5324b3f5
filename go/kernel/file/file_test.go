package file

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bulldog-os/bulldog/go/kernel/errno"
)

func TestBaseDefaults(t *testing.T) {
	var b Base
	if _, err := b.Read(nil); err != errno.ENOSYS {
		t.Errorf("default Read: %v", err)
	}
	if _, err := b.Write(nil); err != errno.ENOSYS {
		t.Errorf("default Write: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("default Close: %v", err)
	}
	if _, err := b.Clone(); err != errno.ENOSYS {
		t.Errorf("default Clone: %v", err)
	}
}

func TestMemFileRoundTrip(t *testing.T) {
	m := NewMemFile(nil)
	if n, err := m.Write([]byte("abc")); n != 3 || err != nil {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	m.Rewind()
	p := make([]byte, 3)
	if n, err := m.Read(p); n != 3 || err != nil {
		t.Fatalf("Read() = %d, %v", n, err)
	}
	if !bytes.Equal(p, []byte("abc")) {
		t.Fatalf("read back %q", p)
	}
	// EOF is an empty read
	if n, err := m.Read(p); n != 0 || err != nil {
		t.Fatalf("Read() at EOF = %d, %v", n, err)
	}
}

func TestMemFileOverwrite(t *testing.T) {
	m := NewMemFile([]byte("bulldog\n"))
	m.Write([]byte("B"))
	p := make([]byte, 16)
	n, _ := m.Read(p)
	if string(p[:n]) != "ulldog\n" {
		t.Fatalf("read after overwrite %q", p[:n])
	}
	m.Write([]byte("++"))
	if string(m.Bytes()) != "Bulldog\n++" || m.Size() != 10 {
		t.Fatalf("contents %q", m.Bytes())
	}
	m.Rewind()
	m.Write(bytes.Repeat([]byte("x"), 100))
	if m.Size() != 100 {
		t.Fatalf("size after growth %d", m.Size())
	}
}

func TestMemFileClone(t *testing.T) {
	m := NewMemFile([]byte("abcdef"))
	p := make([]byte, 2)
	m.Read(p)
	c, err := m.Clone()
	if err != nil {
		t.Fatal(err)
	}
	c.Write([]byte("ZZ"))
	if string(m.Bytes()) != "abcdef" {
		t.Fatal("clone shares storage with the original")
	}
	if got := string(c.(*MemFile).Bytes()); got != "abZZef" {
		t.Fatalf("clone did not keep the cursor: %q", got)
	}
}

func TestConsole(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, 0)
	if _, err := c.Read(make([]byte, 4)); err != errno.EBADF {
		t.Errorf("console Read: %v", err)
	}
	c.Write([]byte("hel"))
	if out.Len() != 0 {
		t.Fatal("partial line was emitted early")
	}
	if n, _ := c.Write([]byte("lo\nwor")); n != 6 {
		t.Fatalf("Write() = %d", n)
	}
	if out.String() != "hello\n" {
		t.Fatalf("got %q", out.String())
	}
	c.Close()
	if out.String() != "hello\nwor\n" {
		t.Fatalf("Close() did not flush: %q", out.String())
	}
}

func TestConsoleWrap(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, 4)
	c.Write([]byte("abcdefgh\n"))
	if out.String() != "abcd\nefgh\n" {
		t.Fatalf("got %q", out.String())
	}
	out.Reset()
	// wide runes take two columns
	c.Write([]byte("日本語\n"))
	if out.String() != "日本\n語\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestInput(t *testing.T) {
	in := NewInput(strings.NewReader("yes\n"))
	p := make([]byte, 16)
	n, err := in.Read(p)
	if err != nil || string(p[:n]) != "yes\n" {
		t.Fatalf("Read() = %q, %v", p[:n], err)
	}
	if n, err := in.Read(p); n != 0 || err != nil {
		t.Fatalf("Read() at EOF = %d, %v", n, err)
	}
	if _, err := in.Write(p); err != errno.EBADF {
		t.Errorf("input Write: %v", err)
	}
}

type closeCounter struct {
	Base
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestSharedRefcount(t *testing.T) {
	backend := &closeCounter{}
	s := NewShared(backend)
	a := s.Retain()
	b := s.Retain()
	if s.Refs() != 3 || a != s || b != s {
		t.Fatalf("refs = %d", s.Refs())
	}
	a.Close()
	b.Close()
	if backend.closed != 0 {
		t.Fatal("backend closed while still referenced")
	}
	s.Close()
	if backend.closed != 1 {
		t.Fatal("last release did not close the backend")
	}
}

func TestSharedState(t *testing.T) {
	s := NewShared(NewMemFile([]byte("bulldog\n")))
	a, b := s.Retain(), s.Retain()
	p := make([]byte, 4)
	a.Read(p)
	b.Read(p)
	if string(p) != "dog\n" {
		t.Fatalf("handles do not share a cursor: %q", p)
	}
	if s.Size() != 8 {
		t.Errorf("Size() = %d", s.Size())
	}
	c, err := s.Clone()
	if err != nil {
		t.Fatal(err)
	}
	if c.(*Shared).Backend() == s.Backend() {
		t.Fatal("Clone() returned the same backend")
	}
	if NewShared(&closeCounter{}).Size() != -1 {
		t.Error("Size() of an unsized backend should be -1")
	}
}
