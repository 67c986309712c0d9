package compiler

import (
	"github.com/syssam/ormgen/compiler/gen"
	"github.com/syssam/ormgen/compiler/gen/dotnet"
	"github.com/syssam/ormgen/compiler/gen/golang"
	"github.com/syssam/ormgen/compiler/gen/php"
)

// DefaultRegistry returns a registry with the built-in emitters.
func DefaultRegistry() *gen.Registry {
	return gen.NewRegistry(
		php.New(),
		dotnet.NewCSharp(),
		dotnet.NewNHibernate(),
		golang.New(),
	)
}
