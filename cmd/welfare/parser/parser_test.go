package parser

import (
	"errors"
	"testing"

	"github.com/SanteonNL/welfare/models/welfare"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wantedListResponse = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<wantedList>
  <totalCount>3</totalCount>
  <pageNo>1</pageNo>
  <numOfRows>10</numOfRows>
  <resultCode>0</resultCode>
  <servList>
    <servNm>아동수당</servNm>
    <servId>WLF00000024</servId>
    <servDgst>아동의 건강한 성장을 지원합니다.</servDgst>
    <jurMnofNm>보건복지부</jurMnofNm>
    <rprsCtadr>129</rprsCtadr>
    <onapPsbltYn>Y</onapPsbltYn>
    <trgterIndvdlArray>다자녀</trgterIndvdlArray>
    <lifeArray>아동</lifeArray>
    <intrsThemaArray>보육</intrsThemaArray>
    <servDtlLink>https://www.bokjiro.go.kr/ssis-tbu/twataa/wlfareInfo/moveTWAT52011M.do?wlfareInfoId=WLF00000024</servDtlLink>
  </servList>
  <servList>
    <servNm></servNm>
    <servName>청년내일저축계좌</servName>
    <servId>WLF00004661</servId>
    <jurMnofNm>보건복지부</jurMnofNm>
  </servList>
  <servList>
    <serviceName>장애인 연금</serviceName>
    <servId>WLF00000057</servId>
    <onapPsbltYn>N</onapPsbltYn>
  </servList>
</wantedList>`

func TestParseWantedList(t *testing.T) {
	records, err := Parse([]byte(wantedListResponse))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, welfare.ServiceRecord{
		Name:        "아동수당",
		ID:          "WLF00000024",
		Summary:     "아동의 건강한 성장을 지원합니다.",
		Department:  "보건복지부",
		Contact:     "129",
		Online:      "Y",
		TargetGroup: "다자녀",
		LifeStage:   "아동",
		Theme:       "보육",
		DetailLink:  "https://www.bokjiro.go.kr/ssis-tbu/twataa/wlfareInfo/moveTWAT52011M.do?wlfareInfoId=WLF00000024",
	}, records[0])

	// empty servNm falls through to the next alias
	assert.Equal(t, "청년내일저축계좌", records[1].Name)
	assert.Equal(t, "", records[1].Summary)

	assert.Equal(t, "장애인 연금", records[2].Name)
	assert.Equal(t, "N", records[2].Online)
}

func TestParseFallbackPaths(t *testing.T) {
	testCases := []struct {
		name  string
		body  string
		names []string
	}{
		{
			name:  "standard response items",
			body:  `<response><header><resultCode>00</resultCode></header><body><items><item><servNm>a</servNm></item><item><servNm>b</servNm></item></items></body></response>`,
			names: []string{"a", "b"},
		},
		{
			name:  "servList without wantedList",
			body:  `<root><servList><servName>a</servName></servList></root>`,
			names: []string{"a"},
		},
		{
			name:  "rows",
			body:  `<rows><row><name>a</name></row><row><name>b</name></row><row><name>c</name></row></rows>`,
			names: []string{"a", "b", "c"},
		},
		{
			name:  "result",
			body:  `<results><result><serviceName>a</serviceName></result></results>`,
			names: []string{"a"},
		},
		{
			name:  "body only",
			body:  `<response><body><servNm>a</servNm></body></response>`,
			names: []string{"a"},
		},
		{
			name:  "empty wantedList falls through",
			body:  `<response><wantedList/><items><servNm>a</servNm></items></response>`,
			names: []string{"a"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records, err := Parse([]byte(tc.body))
			require.NoError(t, err)
			names := make([]string, len(records))
			for i, r := range records {
				names[i] = r.Name
			}
			require.Equal(t, tc.names, names)
		})
	}
}

func TestParseFirstPathWins(t *testing.T) {
	body := `<root>
		<wantedList><servList><servNm>from servList</servNm></servList></wantedList>
		<items><item><servNm>from item</servNm></item></items>
	</root>`

	records, err := Parse([]byte(body))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "from servList", records[0].Name)
}

func TestParseMalformed(t *testing.T) {
	for _, body := range []string{
		`<wantedList><servList><servNm>아동수당</servNm>`,
		`<wantedList><servList><servNm>아동수당</serv`,
		`<a><b></a>`,
	} {
		records, err := Parse([]byte(body))
		require.NotNil(t, records)
		require.Empty(t, records)

		var malformed *MalformedResponseError
		require.True(t, errors.As(err, &malformed), body)
		assert.NotEmpty(t, malformed.Snippet)
	}
}

func TestParseNoMatches(t *testing.T) {
	records, err := Parse([]byte(`<OpenAPI_ServiceResponse><cmmMsgHeader><errMsg>SERVICE ERROR</errMsg></cmmMsgHeader></OpenAPI_ServiceResponse>`))
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestParseIdempotent(t *testing.T) {
	first, err := Parse([]byte(wantedListResponse))
	require.NoError(t, err)
	second, err := Parse([]byte(wantedListResponse))
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("re-parsing changed the records (-first +second):\n%s", diff)
	}
}

func TestParseEveryFieldIsString(t *testing.T) {
	records, err := Parse([]byte(`<items><item><unrelated>x</unrelated></item></items>`))
	require.NoError(t, err)
	require.Len(t, records, 1)

	values := records[0].Values()
	require.Len(t, values, len(welfare.Fields))
	for _, v := range values {
		assert.Equal(t, "", v)
	}
}

func TestAliasTableCoversEveryField(t *testing.T) {
	for _, f := range welfare.Fields {
		assert.NotEmpty(t, FieldAliases[f], f.Label())
	}
	assert.Equal(t, []string{"servNm", "servName", "serviceName", "name"}, FieldAliases[welfare.FieldName])
}
