package dispatch

// suggestionThreshold is the largest edit distance still offered as a
// suggestion; distance three catches transpositions, dropped characters and
// extra characters in short command names.
const suggestionThreshold = 3

// suggestName returns the child name closest to the unknown token, or the
// empty string when nothing is close enough.
func suggestName(unknownToken string, childNames []string) string {
	bestName := ""
	bestDistance := suggestionThreshold + 1
	for _, childName := range childNames {
		distance := editDistance(unknownToken, childName)
		if distance < bestDistance {
			bestDistance = distance
			bestName = childName
		}
	}
	return bestName
}

// editDistance computes the Levenshtein distance between two strings using a
// single rolling row.
func editDistance(first string, second string) int {
	firstRunes := []rune(first)
	secondRunes := []rune(second)
	if len(firstRunes) == 0 {
		return len(secondRunes)
	}
	if len(secondRunes) == 0 {
		return len(firstRunes)
	}

	previousRow := make([]int, len(secondRunes)+1)
	for columnIndex := range previousRow {
		previousRow[columnIndex] = columnIndex
	}
	for rowIndex := 1; rowIndex <= len(firstRunes); rowIndex++ {
		currentRow := make([]int, len(secondRunes)+1)
		currentRow[0] = rowIndex
		for columnIndex := 1; columnIndex <= len(secondRunes); columnIndex++ {
			substitutionCost := 1
			if firstRunes[rowIndex-1] == secondRunes[columnIndex-1] {
				substitutionCost = 0
			}
			currentRow[columnIndex] = minimum(
				previousRow[columnIndex]+1,
				currentRow[columnIndex-1]+1,
				previousRow[columnIndex-1]+substitutionCost,
			)
		}
		previousRow = currentRow
	}
	return previousRow[len(secondRunes)]
}

func minimum(first int, second int, third int) int {
	result := first
	if second < result {
		result = second
	}
	if third < result {
		result = third
	}
	return result
}
