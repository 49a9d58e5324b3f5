package models

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
)

const ConfigFile = "config.json"

type Config struct {
	Output io.Writer `json:"-"`

	Color          bool   `json:"color"`
	TraceSys       bool   `json:"trace_sys"`
	TraceFile      string `json:"trace_file"`
	Strsize        int    `json:"strsize"`
	Verbose        bool   `json:"verbose"`
	VfsPrefix      string `json:"vfs_prefix"`
	FollowSymlinks bool   `json:"follow_symlinks"`
	Hostname       string `json:"hostname"`
	ConsoleWidth   int    `json:"console_width"`
	HeapBase       uint64 `json:"heap_base"`
	HeapSize       uint64 `json:"heap_size"`
}

// Init fills unset fields with their defaults.
func (c *Config) Init() *Config {
	if c == nil {
		c = &Config{}
	}
	if c.Output == nil {
		c.Output = os.Stderr
	}
	if c.Strsize == 0 {
		c.Strsize = 30
	}
	if c.VfsPrefix == "" {
		c.VfsPrefix = "/vfs"
	}
	if c.Hostname == "" {
		c.Hostname = "bulldog"
	}
	if c.HeapBase == 0 {
		c.HeapBase = 0x4000_0000
	}
	if c.HeapSize == 0 {
		c.HeapSize = 0x10_0000
	}
	return c
}

// Load merges a JSON config file into c. Fields missing from the file keep
// their current values.
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "failed to open config")
	}
	defer f.Close()
	return c.decode(f, path)
}

func (c *Config) decode(r io.Reader, name string) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return errors.Wrapf(err, "failed to parse %s", name)
	}
	return nil
}

// LoadDefault merges config.json from the first user or system config
// folder that has one. It returns the path loaded, or "" if none exists.
func (c *Config) LoadDefault() (string, error) {
	configDirs := configdir.New("bulldog", "bulldog")
	folder := configDirs.QueryFolderContainsFile(ConfigFile)
	if folder == nil {
		return "", nil
	}
	data, err := folder.ReadFile(ConfigFile)
	if err != nil {
		return "", errors.Wrap(err, "failed to read config")
	}
	path := filepath.Join(folder.Path, ConfigFile)
	var tmp Config = *c
	if err := json.Unmarshal(data, &tmp); err != nil {
		return "", errors.Wrapf(err, "failed to parse %s", path)
	}
	tmp.Output = c.Output
	*c = tmp
	return path, nil
}
