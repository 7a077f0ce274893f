package object

import (
	"path"

	"github.com/google/uuid"

	"resume-studio/internal/shared/util"
)

// NewKey builds "<owner digest>/<uuid>_<file name>". Any display name is
// accepted; unsafe characters and dot runs are folded away.
func NewKey(ownerID, fileName string) string {
	return path.Join(util.Digest(ownerID), uuid.NewString()+"_"+util.ObjectName(fileName))
}
