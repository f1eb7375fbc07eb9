package assert

import "github.com/predmove/predmove/perror"

func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(perror.New(message, args...))
	}
}
