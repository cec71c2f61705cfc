package logsvc

import "github.com/lyceumacademy/lyceum/core"

// splitArgs pulls the first core.Person out of args.
// expected fmt: error, map[string]interface{}, core.Person
func splitArgs(args []interface{}) (*core.Person, []interface{}) {
	var person *core.Person
	rest := make([]interface{}, 0, len(args))
	for _, arg := range args {
		if p, ok := arg.(core.Person); ok {
			if person == nil { // only keep one Person
				p := p
				person = &p
			}
			continue
		}
		rest = append(rest, arg)
	}
	return person, rest
}
