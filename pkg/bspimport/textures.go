package bspimport

import (
	"strings"

	"github.com/galaco/bsp"
	"github.com/galaco/bsp/lumps"
	"github.com/galaco/bsp/primitives/texdata"
	"github.com/galaco/bsp/primitives/texinfo"
)

type surface struct {
	name  string
	flags int32
}

func surfaces(bspfile *bsp.Bsp) []surface {
	return resolveSurfaces(
		bspfile.Lump(bsp.LumpTexInfo).(*lumps.TexInfo).GetData(),
		bspfile.Lump(bsp.LumpTexData).(*lumps.TexData).GetData(),
		bspfile.Lump(bsp.LumpTexDataStringTable).(*lumps.TexDataStringTable).GetData(),
		bspfile.Lump(bsp.LumpTexDataStringData).(*lumps.TexDataStringData).GetData(),
	)
}

// resolveSurfaces maps every texinfo to its texture name and surface flags.
// Names are NUL terminated strings in stringData at the offsets of stringTable.
func resolveSurfaces(infos []texinfo.TexInfo, datas []texdata.TexData, stringTable []int32, stringData string) []surface {
	out := make([]surface, len(infos))

	for i, info := range infos {
		out[i].flags = info.Flags

		if info.TexData < 0 || int(info.TexData) >= len(datas) {
			continue
		}

		id := datas[info.TexData].NameStringTableID
		if id < 0 || int(id) >= len(stringTable) {
			continue
		}

		offset := stringTable[id]
		if offset < 0 || int(offset) >= len(stringData) {
			continue
		}

		name := stringData[offset:]
		if end := strings.IndexByte(name, 0); end >= 0 {
			name = name[:end]
		}

		out[i].name = name
	}

	return out
}
