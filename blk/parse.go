// Copyright (C) 2024 The wt-blk Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package blk

import (
	"bytes"
	"fmt"

	"github.com/axiangcoding/wt-blk/binfmt"
	"github.com/axiangcoding/wt-blk/namemap"
)

// flatBlock is one row of the block-info table, before tree
// reconstruction (spec.md §4.7, §9 "flat-to-tree rebuild").
type flatBlock struct {
	name       string
	ownFields  []*Field
	childCount int
	firstChild int
}

// Parse decodes payload (with any FileType tag byte and outer zstd
// layer already stripped by the caller, per §6's parse_blk contract)
// into a root Struct field.
//
// names is required when isSlim is true; it is unused (may be nil)
// for the fat dialect, which carries its own name table inline.
func Parse(payload []byte, isSlim bool, names *namemap.NameMap) (*Field, error) {
	p := &parser{buf: payload, names: names, isSlim: isSlim}
	return p.parse()
}

type parser struct {
	buf    []byte
	pos    int
	isSlim bool
	names  *namemap.NameMap

	localNames []string // fat dialect only
}

func (p *parser) parse() (*Field, error) {
	namesCount, err := p.uleb("names_count")
	if err != nil {
		return nil, err
	}

	if !p.isSlim {
		dataSize, err := p.uleb("names_data_size")
		if err != nil {
			return nil, err
		}
		blob, err := p.take("names data", int(dataSize))
		if err != nil {
			return nil, err
		}
		p.localNames = splitNulNames(blob)
	} else if p.names == nil {
		return nil, ErrMissingNameMap
	}
	_ = namesCount // informational; actual name source is localNames or shared NameMap

	blocksCount, err := p.uleb("blocks_count")
	if err != nil {
		return nil, err
	}
	if blocksCount == 0 {
		return nil, ErrEmptyBlockTable
	}

	paramsCount, err := p.uleb("params_count")
	if err != nil {
		return nil, err
	}

	paramsDataSize, err := p.uleb("params_data_size")
	if err != nil {
		return nil, err
	}
	paramsBlob, err := p.take("params-blob", int(paramsDataSize))
	if err != nil {
		return nil, err
	}

	paramsInfo, err := p.take("params-info table", int(paramsCount)*8)
	if err != nil {
		return nil, err
	}
	values, err := p.decodeParamsInfo(paramsInfo, int(paramsCount), paramsBlob)
	if err != nil {
		return nil, err
	}

	flat, err := p.decodeBlockInfo(int(blocksCount), values)
	if err != nil {
		return nil, err
	}

	root := materialize(flat, 0)
	return root, nil
}

func (p *parser) decodeParamsInfo(table []byte, count int, paramsBlob []byte) ([]*Field, error) {
	out := make([]*Field, count)
	for i := 0; i < count; i++ {
		rec := table[i*8 : i*8+8]
		nameID := int(rec[0]) | int(rec[1])<<8 | int(rec[2])<<16
		tag := rec[3]
		var payload [4]byte
		copy(payload[:], rec[4:8])

		name, err := p.resolveParamName(nameID)
		if err != nil {
			return nil, err
		}
		val, err := DecodeValue(tag, payload, paramsBlob, p.names, p.isSlim)
		if err != nil {
			return nil, err
		}
		out[i] = NewValue(name, val)
	}
	return out, nil
}

func (p *parser) resolveParamName(nameID int) (string, error) {
	if p.isSlim {
		name, ok := p.names.Get(nameID)
		if !ok {
			return "", &NameIDRangeError{NameID: nameID, NamesLen: p.names.Len()}
		}
		return name, nil
	}
	if nameID < 0 || nameID >= len(p.localNames) {
		return "", &NameIDRangeError{NameID: nameID, NamesLen: len(p.localNames)}
	}
	return p.localNames[nameID], nil
}

func (p *parser) resolveBlockName(nameID int) (string, error) {
	if nameID == 0 {
		return "root", nil
	}
	return p.resolveParamName(nameID - 1)
}

func (p *parser) decodeBlockInfo(count int, values []*Field) ([]flatBlock, error) {
	flat := make([]flatBlock, count)
	consumed := 0
	for i := 0; i < count; i++ {
		nameID, err := p.uleb("block name_id")
		if err != nil {
			return nil, err
		}
		paramCount, err := p.uleb("block param_count")
		if err != nil {
			return nil, err
		}
		childCount, err := p.uleb("block child_block_count")
		if err != nil {
			return nil, err
		}
		firstChild := 0
		if childCount > 0 {
			firstChild, err = p.uleb("block first_child_block_index")
			if err != nil {
				return nil, err
			}
		}

		name, err := p.resolveBlockName(int(nameID))
		if err != nil {
			return nil, err
		}
		if consumed+int(paramCount) > len(values) {
			return nil, fmt.Errorf("blk: block %d claims %d params, only %d remain", i, paramCount, len(values)-consumed)
		}
		flat[i] = flatBlock{
			name:       name,
			ownFields:  values[consumed : consumed+int(paramCount)],
			childCount: int(childCount),
			firstChild: int(firstChild),
		}
		consumed += int(paramCount)
	}
	return flat, nil
}

// materialize rebuilds the tree by recursive descent over the flat
// block array's (first_child, child_count) ranges (spec.md §9).
func materialize(flat []flatBlock, index int) *Field {
	b := flat[index]
	node := &Field{Name: b.name, Kind: KindStruct}
	node.Children = append(node.Children, b.ownFields...)
	for i := b.firstChild; i < b.firstChild+b.childCount; i++ {
		node.Children = append(node.Children, materialize(flat, i))
	}
	return node
}

func splitNulNames(blob []byte) []string {
	parts := bytes.Split(bytes.TrimRight(blob, "\x00"), []byte{0})
	if len(blob) == 0 {
		return nil
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, string(p))
	}
	return out
}

func (p *parser) uleb(field string) (uint64, error) {
	n, v, err := binfmt.ReadUleb128(p.buf[p.pos:])
	if err != nil {
		return 0, fmt.Errorf("blk: reading %s at offset %d: %w", field, p.pos, err)
	}
	p.pos += n
	return v, nil
}

func (p *parser) take(field string, n int) ([]byte, error) {
	if n < 0 || p.pos+n > len(p.buf) {
		return nil, fmt.Errorf("blk: reading %s (%d bytes) at offset %d exceeds payload of size %d", field, n, p.pos, len(p.buf))
	}
	out := p.buf[p.pos : p.pos+n]
	p.pos += n
	return out, nil
}
