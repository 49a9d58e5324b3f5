package vfs

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/bulldog-os/bulldog/go/kernel/errno"
	"github.com/bulldog-os/bulldog/go/kernel/file"
)

func TestNormalize(t *testing.T) {
	table := [][2]string{
		{"", "/"},
		{"/", "/"},
		{"//etc//", "/etc"},
		{"etc/hostname", "/etc/hostname"},
		{"/a/b/", "/a/b"},
	}
	for _, v := range table {
		if got := Normalize(v[0]); got != v[1] {
			t.Errorf("Normalize(%q) = %q, want %q", v[0], got, v[1])
		}
	}
	if got := Split("/a//b/"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Split() = %v", got)
	}
}

func TestResolve(t *testing.T) {
	tree := NewTree()
	if err := tree.Mkdir("/a/b"); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.Resolve("/a/b"); errno.From(err) != errno.EISDIR {
		t.Errorf("resolve dir: %v", err)
	}
	if _, err := tree.Resolve("/a/missing"); errno.From(err) != errno.ENOENT {
		t.Errorf("resolve missing: %v", err)
	}
	if _, err := tree.Resolve("/"); errno.From(err) != errno.EISDIR {
		t.Errorf("resolve root: %v", err)
	}
	backend := file.NewMemFile(nil)
	if _, err := tree.CreateFile("/a/b/f", backend); err != nil {
		t.Fatal(err)
	}
	h, err := tree.Resolve("/a/b/f")
	if err != nil {
		t.Fatal(err)
	}
	if h.Backend() != backend {
		t.Fatal("Resolve() returned a different backend")
	}
	if _, err := tree.Resolve("/a/b/f/g"); errno.From(err) != errno.ENOTDIR {
		t.Errorf("resolve through file: %v", err)
	}
}

func TestResolveShared(t *testing.T) {
	tree := NewTree()
	tree.CreateFile("/etc/hostname", file.NewMemFile([]byte("bulldog\n")))
	a, _ := tree.Resolve("/etc/hostname")
	b, _ := tree.Resolve("/etc/hostname")
	if a != b {
		t.Fatal("opens of one path should share a handle")
	}
	p := make([]byte, 4)
	a.Read(p)
	b.Read(p)
	if string(p) != "dog\n" {
		t.Fatalf("cursor not shared: %q", p)
	}
	if a.Refs() != 3 {
		t.Fatalf("refs = %d", a.Refs())
	}
	a.Close()
	b.Close()
	if a.Refs() != 1 {
		t.Fatal("tree reference dropped")
	}
}

func TestMkdir(t *testing.T) {
	tree := NewTree()
	if err := tree.Mkdir("/usr/bin"); err != nil {
		t.Fatal(err)
	}
	// idempotent
	if err := tree.Mkdir("/usr/bin/"); err != nil {
		t.Fatal("mkdir of an existing directory failed:", err)
	}
	if err := tree.Mkdir("/"); err != nil {
		t.Fatal(err)
	}
	tree.CreateFile("/usr/bin/ls", file.NewMemFile(nil))
	if err := tree.Mkdir("/usr/bin/ls"); errno.From(err) != errno.ENOTDIR {
		t.Errorf("mkdir over file: %v", err)
	}
	if err := tree.Mkdir("/usr/bin/ls/x"); errno.From(err) != errno.ENOTDIR {
		t.Errorf("mkdir below file: %v", err)
	}
}

func TestCreateFile(t *testing.T) {
	tree := NewTree()
	if _, err := tree.CreateFile("/", file.NewMemFile(nil)); errno.From(err) != errno.EINVAL {
		t.Errorf("create root: %v", err)
	}
	tree.Mkdir("/var/log")
	if _, err := tree.CreateFile("/var/log", file.NewMemFile(nil)); errno.From(err) != errno.EISDIR {
		t.Errorf("create over dir: %v", err)
	}
	tree.CreateFile("/var/log/a", file.NewMemFile(nil))
	if _, err := tree.CreateFile("/var/log/a/b", file.NewMemFile(nil)); errno.From(err) != errno.ENOTDIR {
		t.Errorf("create below file: %v", err)
	}
	// replacing a file swaps the backend
	second := file.NewMemFile([]byte("2"))
	tree.CreateFile("/var/log/a", second)
	if h, _ := tree.Resolve("/var/log/a"); h.Backend() != second {
		t.Error("CreateFile() did not replace the file")
	}
}

func TestSymlinkDisabled(t *testing.T) {
	tree := NewTree()
	tree.Seed("bulldog")
	if err := tree.Symlink("/etc/name", "/etc/hostname"); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.Resolve("/etc/name"); errno.From(err) != errno.ENOSYS {
		t.Errorf("resolve symlink: %v", err)
	}
	tree.Symlink("/e", "/etc")
	if _, err := tree.Resolve("/e/hostname"); errno.From(err) != errno.ENOSYS {
		t.Errorf("resolve through symlink: %v", err)
	}
	if err := tree.Mkdir("/e/x"); errno.From(err) != errno.ENOSYS {
		t.Errorf("mkdir through symlink: %v", err)
	}
	if err := tree.Symlink("/e", "/usr"); errno.From(err) != errno.EEXIST {
		t.Errorf("duplicate symlink: %v", err)
	}
}

func TestSymlinkFollow(t *testing.T) {
	tree := NewTree()
	tree.FollowSymlinks = true
	tree.Seed("bulldog")
	tree.Symlink("/etc/name", "hostname")
	tree.Symlink("/e", "/etc")
	tree.Symlink("/var/log/up", "../../etc/name")
	for _, p := range []string{"/etc/name", "/e/hostname", "/e/name", "/var/log/up"} {
		h, err := tree.Resolve(p)
		if err != nil {
			t.Errorf("Resolve(%s): %v", p, err)
			continue
		}
		buf := make([]byte, 16)
		n, _ := h.Read(buf)
		h.Rewind()
		if string(buf[:n]) != "bulldog\n" {
			t.Errorf("read %q", buf[:n])
		}
	}
	if err := tree.Mkdir("/e/new"); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.Stat("/etc/new"); err != nil {
		t.Error("mkdir through symlink landed in the wrong place:", err)
	}
	tree.Symlink("/loop1", "/loop2")
	tree.Symlink("/loop2", "/loop1")
	if _, err := tree.Resolve("/loop1"); errno.From(err) != errno.ELOOP {
		t.Errorf("circular symlink: %v", err)
	}
	tree.Symlink("/self", "/self/x")
	if _, err := tree.Resolve("/self"); errno.From(err) != errno.ELOOP {
		t.Errorf("self-referencing symlink: %v", err)
	}
	tree.Symlink("/dangling", "/nope")
	if _, err := tree.Resolve("/dangling"); errno.From(err) != errno.ENOENT {
		t.Errorf("dangling symlink: %v", err)
	}
}

func TestList(t *testing.T) {
	tree := NewTree()
	for _, name := range []string{"log10", "log2", "log1", "a"} {
		tree.CreateFile("/var/"+name, file.NewMemFile(nil))
	}
	names, err := tree.List("/var")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"a", "log1", "log2", "log10"}; !reflect.DeepEqual(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
	if _, err := tree.List("/var/a"); errno.From(err) != errno.ENOTDIR {
		t.Errorf("list file: %v", err)
	}
	if _, err := tree.List("/nope"); errno.From(err) != errno.ENOENT {
		t.Errorf("list missing: %v", err)
	}
}

func TestStatCopy(t *testing.T) {
	tree := NewTree()
	tree.Seed("kennel")
	info, err := tree.Stat("/etc/hostname")
	if err != nil {
		t.Fatal(err)
	}
	if info.Kind != KindFile || info.Size != 7 {
		t.Errorf("Stat() = %+v", info)
	}
	if info, _ := tree.Stat("/"); info.Kind != KindDir {
		t.Error("root is not a directory")
	}
	if err := tree.Copy("/etc/hostname", "/tmp/hostname"); err != nil {
		t.Fatal(err)
	}
	h, _ := tree.Resolve("/tmp/hostname")
	h.Write([]byte("K"))
	orig, _ := tree.Resolve("/etc/hostname")
	p := make([]byte, 16)
	n, _ := orig.Read(p)
	if string(p[:n]) != "kennel\n" {
		t.Fatalf("copy shares state with the source: %q", p[:n])
	}
	if err := tree.Copy("/etc", "/tmp/etc"); errno.From(err) != errno.EISDIR {
		t.Errorf("copy dir: %v", err)
	}
}

// closeCounter counts Close calls across itself and its clones.
type closeCounter struct {
	file.Base
	closed *int
}

func (c *closeCounter) Close() error {
	*c.closed++
	return nil
}

func (c *closeCounter) Clone() (file.FileOps, error) {
	return &closeCounter{closed: c.closed}, nil
}

func TestCopyFailure(t *testing.T) {
	tree := NewTree()
	closed := 0
	if _, err := tree.CreateFile("/src", &closeCounter{closed: &closed}); err != nil {
		t.Fatal(err)
	}
	tree.Mkdir("/dir")
	tree.CreateFile("/plain", file.NewMemFile(nil))
	if err := tree.Copy("/src", "/dir"); errno.From(err) != errno.EISDIR {
		t.Errorf("copy onto dir: %v", err)
	}
	if err := tree.Copy("/src", "/plain/x"); errno.From(err) != errno.ENOTDIR {
		t.Errorf("copy below file: %v", err)
	}
	if closed != 2 {
		t.Fatalf("%d clones closed after failed copies, want 2", closed)
	}
}

func TestSeedDump(t *testing.T) {
	tree := NewTree()
	if err := tree.Seed("bulldog"); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	tree.Dump(&buf)
	for _, want := range []string{"etc/", "init/", "hostname (8 bytes)", "usr/", "bin/", "test_write.txt (0 bytes)"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("dump missing %q:\n%s", want, buf.String())
		}
	}
	if len(tree.Mounts()) != 1 || tree.Mounts()[0].Path != "/" {
		t.Error("expected a single root mount")
	}
}
