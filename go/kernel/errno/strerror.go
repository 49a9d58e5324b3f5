package errno

var names = map[Errno]string{
	EPERM:           "EPERM",
	ENOENT:          "ENOENT",
	ESRCH:           "ESRCH",
	EINTR:           "EINTR",
	EIO:             "EIO",
	ENXIO:           "ENXIO",
	E2BIG:           "E2BIG",
	ENOEXEC:         "ENOEXEC",
	EBADF:           "EBADF",
	ECHILD:          "ECHILD",
	EAGAIN:          "EAGAIN",
	ENOMEM:          "ENOMEM",
	EACCES:          "EACCES",
	EFAULT:          "EFAULT",
	ENOTBLK:         "ENOTBLK",
	EBUSY:           "EBUSY",
	EEXIST:          "EEXIST",
	EXDEV:           "EXDEV",
	ENODEV:          "ENODEV",
	ENOTDIR:         "ENOTDIR",
	EISDIR:          "EISDIR",
	EINVAL:          "EINVAL",
	ENFILE:          "ENFILE",
	EMFILE:          "EMFILE",
	ENOTTY:          "ENOTTY",
	ETXTBSY:         "ETXTBSY",
	EFBIG:           "EFBIG",
	ENOSPC:          "ENOSPC",
	ESPIPE:          "ESPIPE",
	EROFS:           "EROFS",
	EMLINK:          "EMLINK",
	EPIPE:           "EPIPE",
	EDOM:            "EDOM",
	ERANGE:          "ERANGE",
	EDEADLK:         "EDEADLK",
	ENAMETOOLONG:    "ENAMETOOLONG",
	ENOLCK:          "ENOLCK",
	ENOSYS:          "ENOSYS",
	ENOTEMPTY:       "ENOTEMPTY",
	ELOOP:           "ELOOP",
	ENOMSG:          "ENOMSG",
	EIDRM:           "EIDRM",
	ENODATA:         "ENODATA",
	ETIME:           "ETIME",
	EPROTO:          "EPROTO",
	EBADMSG:         "EBADMSG",
	EOVERFLOW:       "EOVERFLOW",
	EBADFD:          "EBADFD",
	EILSEQ:          "EILSEQ",
	ENOTSOCK:        "ENOTSOCK",
	EMSGSIZE:        "EMSGSIZE",
	EOPNOTSUPP:      "EOPNOTSUPP",
	ENOBUFS:         "ENOBUFS",
	ETIMEDOUT:       "ETIMEDOUT",
	EALREADY:        "EALREADY",
	EINPROGRESS:     "EINPROGRESS",
	ESTALE:          "ESTALE",
	EDQUOT:          "EDQUOT",
	ECANCELED:       "ECANCELED",
	EOWNERDEAD:      "EOWNERDEAD",
	ENOTRECOVERABLE: "ENOTRECOVERABLE",
}

// only the codes this kernel actually produces get a message
var messages = map[Errno]string{
	EPERM:   "Operation not permitted",
	ENOENT:  "No such file or directory",
	EIO:     "I/O error",
	EBADF:   "Bad file descriptor",
	EAGAIN:  "Try again",
	ENOMEM:  "Out of memory",
	EACCES:  "Permission denied",
	EFAULT:  "Bad address",
	EEXIST:  "File exists",
	ENOTDIR: "Not a directory",
	EISDIR:  "Is a directory",
	EINVAL:  "Invalid argument",
	EMFILE:  "Too many open files",
	ENOSYS:  "Function not implemented",
	ELOOP:   "Too many symbolic links encountered",
}

// Name returns the symbolic name, e.g. "EBADF".
func (e Errno) Name() string {
	if name, ok := names[e]; ok {
		return name
	}
	return "EUNKNOWN"
}

// Strerror returns a human-readable description of e.
func Strerror(e Errno) string {
	if msg, ok := messages[e]; ok {
		return msg
	}
	return "Unknown error"
}

// Lookup maps a symbolic name back to its Errno.
func Lookup(name string) (Errno, bool) {
	for e, n := range names {
		if n == name {
			return e, true
		}
	}
	return 0, false
}

// DecodeName returns the description for a symbolic errno name.
func DecodeName(name string) string {
	if e, ok := Lookup(name); ok {
		return Strerror(e)
	}
	return "Unknown error"
}
