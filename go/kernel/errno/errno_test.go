package errno

import (
	"testing"

	"github.com/pkg/errors"
)

func TestEncode(t *testing.T) {
	for _, e := range []Errno{EPERM, EBADF, EFAULT, EINVAL, EMFILE, ENOSYS} {
		raw := Encode(e)
		if int64(raw) != -int64(e) {
			t.Errorf("Encode(%s) = %#x, signed %d", e.Name(), raw, int64(raw))
		}
		if !IsErr(raw) {
			t.Errorf("IsErr(Encode(%s)) = false", e.Name())
		}
		if _, err := Decode(raw); err != e {
			t.Errorf("Decode(Encode(%s)) = %v", e.Name(), err)
		}
	}
	if n, err := Decode(42); err != nil || n != 42 {
		t.Fatalf("Decode(42) = %d, %v", n, err)
	}
	// large user-space pointers are results, not errors
	if IsErr(0xffff_8000_0000_0000) {
		t.Fatal("kernel-half value decoded as an error")
	}
}

func TestFrom(t *testing.T) {
	if From(nil) != 0 {
		t.Fatal("From(nil) != 0")
	}
	if e := From(errors.Wrap(ENOENT, "resolving /etc")); e != ENOENT {
		t.Fatalf("From(wrapped ENOENT) = %v", e)
	}
	if e := From(errors.New("disk on fire")); e != EIO {
		t.Fatalf("From(opaque) = %v, want EIO", e)
	}
	if raw := Ret(0, errors.Wrap(EBADF, "close")); raw != Encode(EBADF) {
		t.Fatalf("Ret = %#x", raw)
	}
	if raw := Ret(7, nil); raw != 7 {
		t.Fatalf("Ret(7, nil) = %d", raw)
	}
}

func TestNames(t *testing.T) {
	if EBADF.Name() != "EBADF" || Strerror(EBADF) != "Bad file descriptor" {
		t.Fatal("EBADF name/message mismatch")
	}
	if e, ok := Lookup("EMFILE"); !ok || e != EMFILE {
		t.Fatal("Lookup(EMFILE) failed")
	}
	if DecodeName("EFAULT") != "Bad address" {
		t.Fatal("DecodeName(EFAULT) mismatch")
	}
	if DecodeName("EWHATEVER") != "Unknown error" {
		t.Fatal("unknown name should decode to Unknown error")
	}
	if Errno(9999).Name() != "EUNKNOWN" {
		t.Fatal("unexpected name for unknown errno")
	}
}
