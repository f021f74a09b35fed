// Package dir decodes fixed-size directory entries.
package dir

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/RobertReece/os-project3-fscheck/common"
)

// Dirent is one (inode number, name) slot of a directory. Inum 0 marks an
// empty slot.
type Dirent struct {
	Inum common.Inum
	Name [common.DIRSIZ]byte
}

func MkDirent(inum common.Inum, name string) (Dirent, error) {
	de := Dirent{Inum: inum}
	if len(name) == 0 || uint64(len(name)) > common.DIRSIZ {
		return de, fmt.Errorf("bad directory entry name %q", name)
	}
	copy(de.Name[:], name)
	return de, nil
}

func (de Dirent) IsEmpty() bool {
	return de.Inum == common.NULLINUM
}

// NameString is the name up to the first NUL.
func (de Dirent) NameString() string {
	n := bytes.IndexByte(de.Name[:], 0)
	if n < 0 {
		n = len(de.Name)
	}
	return string(de.Name[:n])
}

func (de Dirent) IsDot() bool {
	return de.NameString() == "."
}

func (de Dirent) IsDotDot() bool {
	return de.NameString() == ".."
}

func (de Dirent) Encode() []byte {
	b := make([]byte, common.DIRENTSZ)
	binary.LittleEndian.PutUint16(b, uint16(de.Inum))
	copy(b[2:], de.Name[:])
	return b
}

func Decode(b []byte) Dirent {
	de := Dirent{Inum: common.Inum(binary.LittleEndian.Uint16(b))}
	copy(de.Name[:], b[2:common.DIRENTSZ])
	return de
}
