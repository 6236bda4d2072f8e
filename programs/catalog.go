// Package programs holds hand-assembled instruction sequences that the
// command line and the api can run by name.
package programs

import (
	"fmt"
	"sort"

	"github.com/krehermann/bytevm/vm"
)

type Entry struct {
	Name        string
	Description string
	Program     vm.Program
}

var catalog = map[string]Entry{}

func register(name, desc string, p vm.Program) {
	if _, exists := catalog[name]; exists {
		panic(fmt.Sprintf("program %q registered twice", name))
	}
	if err := vm.Validate(p); err != nil {
		panic(fmt.Sprintf("program %q: %s", name, err))
	}
	catalog[name] = Entry{
		Name:        name,
		Description: desc,
		Program:     p,
	}
}

func init() {
	register("arith", "x = 1; y = 2; return (x + 1) * y", vm.Program{
		vm.LoadVal(1),
		vm.WriteVar("x"),
		vm.LoadVal(2),
		vm.WriteVar("y"),
		vm.ReadVar("x"),
		vm.LoadVal(1),
		vm.Add(),
		vm.ReadVar("y"),
		vm.Multiply(),
		vm.ReturnValue(),
	})

	register("add", "return 2 + 3", vm.Program{
		vm.LoadVal(2),
		vm.LoadVal(3),
		vm.Add(),
		vm.ReturnValue(),
	})

	register("missing_var", "return x without ever writing x", vm.Program{
		vm.ReadVar("x"),
		vm.ReturnValue(),
	})

	register("count_to_ten", "i = 0; do i = i + 1 while i != 10", vm.Program{
		// i = 0
		vm.LoadVal(0),
		vm.WriteVar("i"),
		// i = i + 1
		vm.ReadVar("i"),
		vm.LoadVal(1),
		vm.Add(),
		vm.WriteVar("i"),
		// while i != 10
		vm.ReadVar("i"),
		vm.LoadVal(10),
		vm.CmpEq(),
		vm.JumpIfFalse(2),
	})

	register("equal", "return 7 == 7", vm.Program{
		vm.LoadVal(7),
		vm.LoadVal(7),
		vm.CmpEq(),
		vm.ReturnValue(),
	})

	register("leftover", "3 + 4 left on the stack without a return", vm.Program{
		vm.LoadVal(3),
		vm.LoadVal(4),
		vm.Add(),
	})

	register("sum_to_five", "sum 1..5 with an explicit loop exit", SumTo(5))

	register("overflow", "return 4294967295 + 1, wrapping to 0", vm.Program{
		vm.LoadVal(0xffffffff),
		vm.LoadVal(1),
		vm.Add(),
		vm.ReturnValue(),
	})
}

// SumTo builds a program returning 1 + 2 + ... + n. It counts i down from
// n, adding 2^32-1 to decrement, and leaves the loop with Goto once i is 0.
func SumTo(n vm.Value) vm.Program {
	const done = 18
	return vm.Program{
		// s = 0; i = n
		vm.LoadVal(0),
		vm.WriteVar("s"),
		vm.LoadVal(n),
		vm.WriteVar("i"),
		// loop: if i == 0 goto done
		vm.ReadVar("i"),
		vm.LoadVal(0),
		vm.CmpEq(),
		vm.JumpIfFalse(9),
		vm.Goto(done),
		// s = s + i
		vm.ReadVar("s"),
		vm.ReadVar("i"),
		vm.Add(),
		vm.WriteVar("s"),
		// i = i - 1
		vm.ReadVar("i"),
		vm.LoadVal(0xffffffff),
		vm.Add(),
		vm.WriteVar("i"),
		vm.Goto(4),
		// done
		vm.ReadVar("s"),
		vm.ReturnValue(),
	}
}

// Get returns the named entry
func Get(name string) (Entry, error) {
	e, exists := catalog[name]
	if !exists {
		return Entry{}, fmt.Errorf("program '%s' does not exist", name)
	}
	return e, nil
}

// Names returns every registered program name, sorted
func Names() []string {
	out := make([]string, 0, len(catalog))
	for k := range catalog {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// All returns every entry in name order
func All() []Entry {
	names := Names()
	out := make([]Entry, len(names))
	for i, n := range names {
		out[i] = catalog[n]
	}
	return out
}
