package parser

import "github.com/SanteonNL/welfare/models/welfare"

// FieldAliases maps each logical field to the tag names it is published under,
// in order of preference. The upstream schema differs between API versions and
// environments, so the first non-empty candidate wins.
var FieldAliases = map[welfare.Field][]string{
	welfare.FieldName:        {"servNm", "servName", "serviceName", "name"},
	welfare.FieldID:          {"servId", "serviceId", "servID", "id"},
	welfare.FieldSummary:     {"servDgst", "servDesc", "summary", "description"},
	welfare.FieldDepartment:  {"jurMnofNm", "jurOrgNm", "department", "orgNm"},
	welfare.FieldContact:     {"rprsCtadr", "inqplCtadr", "contact", "tel"},
	welfare.FieldOnline:      {"onapPsbltYn", "onlineYn", "online"},
	welfare.FieldTargetGroup: {"trgterIndvdlArray", "trgterIndvdlNmArray", "target", "targetGroup"},
	welfare.FieldLifeStage:   {"lifeArray", "lifeNmArray", "lifeStage", "life"},
	welfare.FieldTheme:       {"intrsThemaArray", "intrsThemaNmArray", "theme", "interestTheme"},
	welfare.FieldDetailLink:  {"servDtlLink", "detailLink", "link", "url"},
}

// ResultPaths are the element paths that may hold the result list, in priority order.
var ResultPaths = []string{
	"//wantedList//servList",
	"//servList",
	"//item",
	"//row",
	"//result",
	"//body",
	"//items",
}
