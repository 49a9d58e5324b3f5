package models

import "fmt"

// ExitStatus is returned as an error once the user program calls exit.
type ExitStatus int

func (e ExitStatus) Error() string {
	return fmt.Sprintf("exit %d", e)
}

func (e ExitStatus) Code() int {
	return int(e)
}
