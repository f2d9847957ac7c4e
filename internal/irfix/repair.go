// Package irfix repairs and optimizes the textual IR module written by the
// first compiler pass so an older LLVM toolchain accepts it.
package irfix

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
)

const metadataKeyword = "metadata "

// RepairLine rewrites a metadata line to the older syntax, where every
// metadata reference carries an explicit "metadata" type and "distinct" does
// not exist. Lines not starting with '!' are returned unchanged.
//
//	!7 = distinct !{!8, !"x"}  =>  !7 = metadata !{metadata !8, metadata !"x"}
func RepairLine(line string) string {
	if !strings.HasPrefix(line, "!") {
		return line
	}
	line = strings.ReplaceAll(line, "!", metadataKeyword+"!")
	line = strings.ReplaceAll(line, "distinct metadata", "metadata")
	return line[len(metadataKeyword):]
}

// Repair reads a whole module from r and returns the repaired text. Nothing
// is returned unless every line was read; each output line ends in '\n'.
func Repair(r io.Reader) ([]byte, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	var out bytes.Buffer
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			out.WriteString(RepairLine(line))
			out.WriteByte('\n')
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return out.Bytes(), nil
}
