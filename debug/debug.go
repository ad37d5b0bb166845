package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Rewrite bool
	Index   bool
	Op      bool
	Select  bool
	Host    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Rewrite = boolEnv("GRAFT_DEBUG_REWRITE")
	d.Index = boolEnv("GRAFT_DEBUG_INDEX")
	d.Op = boolEnv("GRAFT_DEBUG_OP")
	d.Select = boolEnv("GRAFT_DEBUG_SELECT")
	d.Host = boolEnv("GRAFT_DEBUG_HOST")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Rewrite() bool {
	return d.Rewrite
}
func Index() bool {
	return d.Index
}
func Op() bool {
	return d.Op
}
func Select() bool {
	return d.Select
}
func Host() bool {
	return d.Host
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
