package hiddesc

type globalState struct {
	usagePage       uint16
	reportID        uint8
	reportSize      uint32
	reportCount     uint32
	logicalMinimum  int32
	logicalMaximum  int32
	physicalMinimum int32
	physicalMaximum int32
	unit            uint32
	unitExponent    int8
}

type localState struct {
	usages        []uint32
	hasUsageRange bool
	usageMinimum  uint32
	usageMaximum  uint32
}

// fieldUsages materializes the usage list for a main item. A usage range
// takes precedence over individually listed usages; an inverted range is
// empty.
func (l *localState) fieldUsages() []uint32 {
	if !l.hasUsageRange {
		return l.usages
	}
	if l.usageMinimum > l.usageMaximum {
		return nil
	}
	usages := make([]uint32, 0, l.usageMaximum-l.usageMinimum+1)
	for u := l.usageMinimum; ; u++ {
		usages = append(usages, u)
		if u == l.usageMaximum {
			break
		}
	}
	return usages
}

// Parse decodes a raw HID report descriptor into a collection tree and a
// Report ID index. It never fails: truncated input halts decoding, unknown
// tags are skipped and stack underflow is absorbed, so any byte stream
// yields a best-effort tree.
func Parse(data []byte) *Descriptor {
	src := make([]byte, len(data))
	copy(src, data)
	d := &Descriptor{
		root:   &Collection{},
		index:  make(map[uint8][]*Field),
		source: src,
	}

	stack := []*Collection{d.root}
	var (
		global      globalState
		globalStack []globalState
		local       localState
	)

	r := itemReader{buf: src}
	for {
		it, _, ok := r.next()
		if !ok {
			break
		}
		switch it.Type {
		case ItemMain:
			top := stack[len(stack)-1]
			switch it.Tag {
			case tagCollection:
				node := &Collection{
					Type:      CollectionType(it.Data),
					UsagePage: global.usagePage,
				}
				if n := len(local.usages); n > 0 {
					node.Usage = local.usages[n-1]
				}
				top.Children = append(top.Children, node)
				stack = append(stack, node)
			case tagEndCollection:
				if len(stack) > 1 {
					stack = stack[:len(stack)-1]
				}
			case tagInput, tagOutput, tagFeature:
				f := &Field{
					Kind:            fieldKind(it.Tag),
					ReportID:        global.reportID,
					UsagePage:       global.usagePage,
					Usages:          local.fieldUsages(),
					ReportSize:      global.reportSize,
					ReportCount:     global.reportCount,
					LogicalMinimum:  global.logicalMinimum,
					LogicalMaximum:  global.logicalMaximum,
					PhysicalMinimum: global.physicalMinimum,
					PhysicalMaximum: global.physicalMaximum,
					Unit:            global.unit,
					UnitExponent:    global.unitExponent,
					Flags:           FieldFlags(it.Data),
				}
				top.Fields = append(top.Fields, f)
				d.index[f.ReportID] = append(d.index[f.ReportID], f)
			}
			// Local state dies at every main item, known tag or not.
			local = localState{}
		case ItemGlobal:
			switch it.Tag {
			case tagUsagePage:
				global.usagePage = uint16(it.Data)
			case tagLogicalMinimum:
				global.logicalMinimum = signExtend(it.Data, it.Size)
			case tagLogicalMaximum:
				global.logicalMaximum = signExtend(it.Data, it.Size)
			case tagPhysicalMinimum:
				global.physicalMinimum = signExtend(it.Data, it.Size)
			case tagPhysicalMaximum:
				global.physicalMaximum = signExtend(it.Data, it.Size)
			case tagUnitExponent:
				global.unitExponent = int8(signExtend(it.Data, it.Size))
			case tagUnit:
				global.unit = it.Data
			case tagReportSize:
				global.reportSize = it.Data
			case tagReportID:
				global.reportID = uint8(it.Data)
			case tagReportCount:
				global.reportCount = it.Data
			case tagPush:
				globalStack = append(globalStack, global)
			case tagPop:
				if n := len(globalStack); n > 0 {
					global = globalStack[n-1]
					globalStack = globalStack[:n-1]
				}
			}
		case ItemLocal:
			switch it.Tag {
			case tagUsage:
				local.usages = append(local.usages, it.Data)
			case tagUsageMinimum:
				local.hasUsageRange = true
				local.usageMinimum = it.Data
			case tagUsageMaximum:
				local.hasUsageRange = true
				local.usageMaximum = it.Data
			}
			// String and designator tags fall through untouched.
		}
	}
	return d
}

func fieldKind(tag uint8) FieldKind {
	switch tag {
	case tagOutput:
		return FieldOutput
	case tagFeature:
		return FieldFeature
	default:
		return FieldInput
	}
}
