package gen

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierError(t *testing.T) {
	t.Run("Error message with entity", func(t *testing.T) {
		err := &IdentifierError{Entity: "User", Column: "1st", Name: "1st", Message: "invalid column name"}

		assert.Contains(t, err.Error(), "ormgen: invalid identifier")
		assert.Contains(t, err.Error(), `"1st"`)
		assert.Contains(t, err.Error(), "in entity User")
		assert.Contains(t, err.Error(), "invalid column name")
	})

	t.Run("Error message without entity", func(t *testing.T) {
		err := &IdentifierError{Name: "a-b"}
		assert.NotContains(t, err.Error(), "in entity")
	})

	t.Run("Is matches ErrInvalidIdentifier", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &IdentifierError{Name: "x"})
		assert.True(t, errors.Is(err, ErrInvalidIdentifier))
		assert.False(t, errors.Is(err, ErrDuplicateColumn))
		assert.True(t, IsIdentifierError(err))
		assert.False(t, IsIdentifierError(errors.New("other")))
	})
}

func TestColumnError(t *testing.T) {
	err := &ColumnError{Entity: "User", Column: "id"}

	assert.Equal(t, `ormgen: duplicate column "id" in entity User`, err.Error())
	assert.True(t, errors.Is(err, ErrDuplicateColumn))
	assert.True(t, IsColumnError(err))
}

func TestTypeError(t *testing.T) {
	t.Run("Error message with column", func(t *testing.T) {
		err := &TypeError{Target: PHP, Tag: "unobtainium", Entity: "User", Column: "x"}
		assert.Equal(t, `ormgen: unsupported type "unobtainium" for target php on User.x`, err.Error())
	})

	t.Run("Error message without entity", func(t *testing.T) {
		err := &TypeError{Target: Go, Tag: "blob"}
		assert.Equal(t, `ormgen: unsupported type "blob" for target go`, err.Error())
	})

	t.Run("Is matches ErrUnsupportedType", func(t *testing.T) {
		err := &TypeError{Target: Go, Tag: "blob"}
		assert.True(t, errors.Is(err, ErrUnsupportedType))
		assert.True(t, IsTypeError(err))
		assert.False(t, IsTargetError(err))
	})
}

func TestTargetError(t *testing.T) {
	err := &TargetError{Target: "cobol"}

	assert.Contains(t, err.Error(), `"cobol"`)
	assert.True(t, errors.Is(err, ErrUnsupportedTarget))
	assert.True(t, IsTargetError(err))
}

func TestFileError(t *testing.T) {
	err := &FileError{Op: "write", Path: "/x/User.php", Cause: os.ErrPermission}

	assert.Contains(t, err.Error(), "ormgen: write /x/User.php")
	assert.True(t, errors.Is(err, ErrFilesystem))
	assert.True(t, errors.Is(err, os.ErrPermission))
	assert.Equal(t, os.ErrPermission, err.Unwrap())
	assert.True(t, IsFileError(fmt.Errorf("wrapped: %w", err)))
}
