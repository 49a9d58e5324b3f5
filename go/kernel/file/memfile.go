package file

// MemFile is a growable in-memory byte store with its own cursor.
// Reads at or past the end return 0 bytes.
type MemFile struct {
	Base
	data []byte
	off  int
}

func NewMemFile(initial []byte) *MemFile {
	data := make([]byte, len(initial))
	copy(data, initial)
	return &MemFile{data: data}
}

func (m *MemFile) Read(p []byte) (int, error) {
	if m.off >= len(m.data) {
		return 0, nil
	}
	n := copy(p, m.data[m.off:])
	m.off += n
	return n, nil
}

// Write overwrites at the cursor, zero-filling any gap past the end.
func (m *MemFile) Write(p []byte) (int, error) {
	end := m.off + len(p)
	if end > len(m.data) {
		if end > cap(m.data) {
			grown := make([]byte, end, end*2)
			copy(grown, m.data)
			m.data = grown
		} else {
			tail := m.data[len(m.data):end]
			for i := range tail {
				tail[i] = 0
			}
			m.data = m.data[:end]
		}
	}
	copy(m.data[m.off:], p)
	m.off = end
	return len(p), nil
}

func (m *MemFile) Rewind() {
	m.off = 0
}

func (m *MemFile) Clone() (FileOps, error) {
	c := NewMemFile(m.data)
	c.off = m.off
	return c, nil
}

func (m *MemFile) Size() int64 {
	return int64(len(m.data))
}

// Bytes returns a copy of the contents.
func (m *MemFile) Bytes() []byte {
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}
