package vfs

import (
	"github.com/bulldog-os/bulldog/go/kernel/file"
)

// Seed populates a fresh tree with the boot-time layout.
func (t *Tree) Seed(hostname string) error {
	for _, dir := range []string{"/etc", "/etc/init", "/usr/bin", "/var/log"} {
		if err := t.Mkdir(dir); err != nil {
			return err
		}
	}
	if _, err := t.CreateFile("/etc/hostname", file.NewMemFile([]byte(hostname+"\n"))); err != nil {
		return err
	}
	_, err := t.CreateFile("/var/log/test_write.txt", file.NewMemFile(nil))
	return err
}
