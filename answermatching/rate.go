//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package answermatching

// DefaultRatingThreshold separates good from poor chrF matches.
const DefaultRatingThreshold = 50.0

// Rating is a human readable verdict on one score.
type Rating struct {
	Score float64 `json:"score"`
	Text  string  `json:"text"`
	Class string  `json:"rating"`
}

// Rate labels score against threshold. Scores equal to the threshold are
// poor.
func Rate(score, threshold float64) Rating {
	if score > threshold {
		return Rating{Score: score, Text: "Excellent Match", Class: "high-score"}
	}
	return Rating{Score: score, Text: "Poor Match", Class: "low-score"}
}
