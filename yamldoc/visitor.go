package yamldoc

import (
	"runtime/debug"
	"strings"
	"sync"

	"github.com/blang/semver/v4"

	"github.com/graft-format/graft/tree"
)

// go-yaml anchors document head comments to the root path key since
// 1.12; a root rebuild drops the node comment, so those versions need
// the re-attaching visitor. Older versions anchor the comment to the
// first member, which survives a root rebuild on its own.
var rootCommentVer = semver.MustParse("1.12.0")

const yamlModule = "github.com/goccy/go-yaml"

var defaultVisitor = sync.OnceValue(func() *tree.ChildVisitor {
	return visitorFor(yamlVersion())
})

// DefaultVisitor returns the child visitor matching the linked go-yaml
// version. The choice is made once per process and is immutable; hosts
// with other requirements can construct a tree.ChildVisitor directly.
func DefaultVisitor() *tree.ChildVisitor {
	return defaultVisitor()
}

func visitorFor(version string) *tree.ChildVisitor {
	v, err := semver.ParseTolerant(strings.TrimPrefix(version, "v"))
	if err != nil {
		// Unknown host version: assume current behavior.
		return tree.NewChildVisitor(tree.PreserveRootComment(true))
	}
	if v.GE(rootCommentVer) {
		return tree.NewChildVisitor(tree.PreserveRootComment(true))
	}
	return tree.NewChildVisitor()
}

func yamlVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, dep := range bi.Deps {
		if dep.Path == yamlModule {
			return dep.Version
		}
	}
	return ""
}
