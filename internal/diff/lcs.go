package diff

import "document-versioning-server/internal/model"

// lineDiff : построчное сравнение через наибольшую общую подпоследовательность.
// При равных вариантах пропускается лексикографически меньшая строка, поэтому
// lineDiff(b, a) зеркален lineDiff(a, b): added и removed меняются местами, набор строк тот же.
// Возвращает false, если таблица LCS превышает maxCells.
func lineDiff(a, b []string, maxCells int) ([]model.DiffLine, bool) {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix && a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}

	midA := a[prefix : len(a)-suffix]
	midB := b[prefix : len(b)-suffix]
	n, m := len(midA), len(midB)

	if maxCells > 0 && (n+1)*(m+1) > maxCells {
		return nil, false
	}

	out := make([]model.DiffLine, 0, len(a)+len(b)-prefix-suffix)
	for i := 0; i < prefix; i++ {
		out = append(out, model.DiffLine{Op: model.LineUnchanged, Text: a[i], OldLine: i + 1, NewLine: i + 1})
	}

	// dp[i*(m+1)+j] = LCS(midA[i:], midB[j:])
	width := m + 1
	dp := make([]int32, (n+1)*width)
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if midA[i] == midB[j] {
				dp[i*width+j] = dp[(i+1)*width+j+1] + 1
			} else if down, right := dp[(i+1)*width+j], dp[i*width+j+1]; down >= right {
				dp[i*width+j] = down
			} else {
				dp[i*width+j] = right
			}
		}
	}

	removed := func(i int) {
		out = append(out, model.DiffLine{Op: model.LineRemoved, Text: midA[i], OldLine: prefix + i + 1})
	}
	added := func(j int) {
		out = append(out, model.DiffLine{Op: model.LineAdded, Text: midB[j], NewLine: prefix + j + 1})
	}

	i, j := 0, 0
	// при dp == 0 совпадений дальше нет: сначала все удалённые, затем все добавленные
	for i < n && j < m && dp[i*width+j] > 0 {
		switch down, right := dp[(i+1)*width+j], dp[i*width+j+1]; {
		case midA[i] == midB[j]:
			out = append(out, model.DiffLine{
				Op:      model.LineUnchanged,
				Text:    midA[i],
				OldLine: prefix + i + 1,
				NewLine: prefix + j + 1,
			})
			i++
			j++
		case down > right:
			removed(i)
			i++
		case right > down:
			added(j)
			j++
		case midA[i] < midB[j]:
			removed(i)
			i++
		default:
			added(j)
			j++
		}
	}
	for ; i < n; i++ {
		removed(i)
	}
	for ; j < m; j++ {
		added(j)
	}

	for k := 0; k < suffix; k++ {
		oldIdx := len(a) - suffix + k
		newIdx := len(b) - suffix + k
		out = append(out, model.DiffLine{Op: model.LineUnchanged, Text: a[oldIdx], OldLine: oldIdx + 1, NewLine: newIdx + 1})
	}
	return out, true
}
