package q

import (
	"strings"

	"github.com/npillmayer/tinyq/dom"
)

type classAction struct {
	sign  byte // one of + - ^ ? !
	class string
}

func isSign(b byte) bool {
	return b == '+' || b == '-' || b == '^' || b == '?' || b == '!'
}

// parseClassActions reads a class action string. A leading "s:" applies sign s
// to every token without a sign of its own.
func parseClassActions(actions string) []classAction {
	actions = strings.TrimSpace(actions)
	sign := byte('+')
	if len(actions) >= 2 && isSign(actions[0]) && actions[1] == ':' {
		sign, actions = actions[0], actions[2:]
	}
	var r []classAction
	for _, tok := range strings.Fields(actions) {
		a := classAction{sign: sign, class: tok}
		if isSign(tok[0]) {
			a.sign, a.class = tok[0], tok[1:]
		}
		if a.class != "" {
			r = append(r, a)
		}
	}
	return r
}

// Class manipulates and checks the classes of the elements. actions is a list
// of class names, each one optionally prefixed by a sign:
//
//	+name   add (the default)
//	-name   remove
//	^name   toggle
//	?name   check that the class is present
//	!name   check that the class is absent
//
// A prefix "s:" applies sign s to all of the names, e.g. "-:a b c".
// Mutations of an element are applied before its checks. Class returns the
// collection, and, if there were checks, whether every element passed all of
// them.
func (c *Collection) Class(actions string) (*Collection, bool) {
	if c.err != nil {
		return c, false
	}
	var mutations, checks []classAction
	for _, a := range parseClassActions(actions) {
		if a.sign == '?' || a.sign == '!' {
			checks = append(checks, a)
		} else {
			mutations = append(mutations, a)
		}
	}
	ok := len(checks) > 0
	checked := false
	for _, n := range c.elements() {
		for _, a := range mutations {
			switch a.sign {
			case '+':
				dom.AddClass(n, a.class)
			case '-':
				dom.RemoveClass(n, a.class)
			case '^':
				dom.ToggleClass(n, a.class)
			}
		}
		if len(checks) == 0 || !ok {
			if len(mutations) == 0 {
				break
			}
			continue
		}
		checked = true
		for _, a := range checks {
			if dom.HasClass(n, a.class) != (a.sign == '?') {
				ok = false
				break
			}
		}
	}
	if len(mutations) > 0 {
		c.engine.doc.Touch()
	}
	return c, ok && checked
}

// HasClass checks if any element carries a class.
func (c *Collection) HasClass(class string) bool {
	for _, n := range c.elements() {
		if dom.HasClass(n, class) {
			return true
		}
	}
	return false
}
