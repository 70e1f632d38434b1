package helper

import (
	"regexp"
	"strings"

	"github.com/temasamo/Koyo-travel-ai/internal/domain/model"
)

// maxParsedLegs パターン抽出で採用するルート区間の上限
const maxParsedLegs = 10

// routeTablePattern AI応答内のルート表「N. <出発地> → <目的地> <距離>km / <時間>」に一致するパターン
// 目的地の捕捉 `[^\d]+?` は距離欄の数字を境界にしており、数字を含む目的地名は
// 数字の手前で切れる。プロンプトが指示するルート表形式に合わせた意図的なパターンであり、
// 緩めると「5.2km」の先頭が目的地側に食い込む
var routeTablePattern = regexp.MustCompile(`(\d+)\.\s*([^→]+)→\s*([^\d]+?)\s*([\d.]+)\s*km\s*/\s*([^\n]+)`)

// ParseRouteTable はテキスト中の番号付きルート表からルート区間を抽出する
// AIのJSON応答が壊れていてもルート表自体は復元できるようにするための決定的フォールバック
func ParseRouteTable(text string) []model.RouteLeg {
	matches := routeTablePattern.FindAllStringSubmatch(text, -1)

	var legs []model.RouteLeg
	for _, match := range matches {
		if len(legs) >= maxParsedLegs {
			break
		}
		legs = append(legs, model.RouteLeg{
			From:     strings.TrimSpace(match[2]),
			To:       strings.TrimSpace(match[3]),
			Distance: match[4] + "km",
			Duration: strings.TrimSpace(match[5]),
		})
	}
	return legs
}

// SynthesizeLegsFromOrder は候補の出現順からルート区間を合成する
// 宣言ルートもパターン抽出も空だったが候補が2件以上ある場合に使用する
// 先頭候補が出発地点そのものでない限り、古窯旅館を出発地として先頭に補う
// 距離・時間は数値を捏造せず「推定」とする
func SynthesizeLegsFromOrder(candidates []model.LocationCandidate, originName string) []model.RouteLeg {
	if len(candidates) < 2 {
		return nil
	}
	if originName == "" {
		originName = model.DefaultOriginName
	}

	names := make([]string, 0, len(candidates)+1)
	if candidates[0].Name != originName {
		names = append(names, originName)
	}
	for _, c := range candidates {
		names = append(names, c.Name)
	}

	legs := make([]model.RouteLeg, 0, len(names)-1)
	for i := 0; i < len(names)-1; i++ {
		legs = append(legs, model.RouteLeg{
			From:     names[i],
			To:       names[i+1],
			Distance: model.EstimatedText,
			Duration: model.EstimatedText,
		})
	}
	return legs
}
