package disk

import "errors"

// ErrNoPartition is returned when an image's MBR carries no recognized
// NetWare partition type (0x64/0x65) in any of its four entries.
var ErrNoPartition = errors.New("no NetWare partition found")
