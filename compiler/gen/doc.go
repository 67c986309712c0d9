// Package gen turns parsed entity schemas into persistence classes.
//
// # Pipeline
//
// Every entity of a schema passes through the same steps:
//
//	load.Entity (raw keys, raw type tags)
//	        ↓
//	   Normalize: validated identifiers, sorted columns, method suffixes
//	        ↓
//	   Context
//	        ↓
//	   Emitter.Render (per target)
//	        ↓
//	   []*Artifact
//	        ↓
//	   Writer (Overwrite or CreateOnly)
//
// Compile drives the pipeline for one schema, one output directory and
// one target. A failing entity does not stop the others; its error is
// recorded in its EntityResult and passed to the AfterGenerate callback.
//
// # Targets
//
// The emitters live in subpackages and are registered in a Registry:
//
//   - php: trait based classes with method_exists hooks
//   - dotnet: C# partial classes, and NHibernate classes with mapping
//     attributes and an hbm.xml file
//   - golang: Go structs with interface assertion hooks, built with Jennifer
//
// Each target writes a regenerated class file and an extension file that
// is created once and never touched again.
//
// # Types
//
// Column type tags are case-insensitive and have aliases ("int" is
// "int32", "timestamp" is "datetime"). LookupType resolves a tag to the
// native type of a target. Supported lists the canonical tags a target
// can map.
//
// # Error Handling
//
// Errors are typed and match the sentinels through errors.Is:
//
//   - IdentifierError: ErrInvalidIdentifier
//   - ColumnError: ErrDuplicateColumn
//   - TypeError: ErrUnsupportedType
//   - TargetError: ErrUnsupportedTarget
//   - FileError: ErrFilesystem
//
// Example error handling:
//
//	res, err := gen.Compile(cfg, schema)
//	if err != nil {
//	    return err
//	}
//	for _, e := range res.Failed() {
//	    if gen.IsTypeError(e.Err) {
//	        // Handle unsupported column type
//	    }
//	}
package gen
