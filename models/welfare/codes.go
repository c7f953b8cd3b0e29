package welfare

import "golang.org/x/exp/slices"

// Code is a single entry of a government code table. The empty value means "all".
type Code struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CodeTable is an ordered, fixed mapping of three-digit codes to display labels.
type CodeTable struct {
	Name    string // Display name of the filter dimension
	Param   string // Query parameter the code is sent as
	Entries []Code
}

// Contains reports whether code is a member of the table. The empty code is always a member.
func (t CodeTable) Contains(code string) bool {
	return slices.ContainsFunc(t.Entries, func(c Code) bool {
		return c.Value == code
	})
}

// Label returns the display label of code, or the code itself when unknown.
func (t CodeTable) Label(code string) string {
	i := slices.IndexFunc(t.Entries, func(c Code) bool {
		return c.Value == code
	})
	if i < 0 {
		return code
	}
	return t.Entries[i].Label
}

var LifeStages = CodeTable{
	Name:  "생애주기",
	Param: "lifeArray",
	Entries: []Code{
		{"", "전체"},
		{"001", "영유아"},
		{"002", "아동"},
		{"003", "청소년"},
		{"004", "청년"},
		{"005", "중장년"},
		{"006", "노년"},
		{"007", "임신·출산"},
	},
}

var TargetGroups = CodeTable{
	Name:  "대상",
	Param: "trgterIndvdlArray",
	Entries: []Code{
		{"", "전체"},
		{"010", "다문화·탈북민"},
		{"020", "다자녀"},
		{"030", "보훈대상자"},
		{"040", "장애인"},
		{"050", "저소득"},
		{"060", "한부모·조손"},
	},
}

var InterestThemes = CodeTable{
	Name:  "관심주제",
	Param: "intrsThemaArray",
	Entries: []Code{
		{"", "전체"},
		{"010", "신체건강"},
		{"020", "정신건강"},
		{"030", "생활지원"},
		{"040", "주거"},
		{"050", "일자리"},
		{"060", "문화·여가"},
		{"070", "안전·위기"},
		{"080", "임신·출산"},
		{"090", "보육"},
		{"100", "교육"},
		{"110", "입양·위탁"},
		{"120", "보호·돌봄"},
		{"130", "서민금융"},
		{"140", "법률"},
	},
}

// PageSizes lists the allowed numbers of rows per page.
var PageSizes = []int{10, 20, 30, 50, 100}

const DefaultPageSize = 30
