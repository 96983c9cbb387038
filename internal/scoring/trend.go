package scoring

// TrendScore maps the predicted-vs-last-close move to a 0-100 score.
// Bands on the percentage change, evaluated high to low:
//
//	> +2%          -> 90
//	(+0.5%, +2%]   -> 70
//	(-0.5%, +0.5%] -> 50
//	(-2%, -0.5%]   -> 30
//	<= -2%         -> 10
//
// A zero lastClose makes the change undefined and returns an
// InvalidInputError rather than a default.
func TrendScore(lastClose, predictedClose float64) (float64, error) {
	if lastClose == 0 {
		return 0, &InvalidInputError{Field: "last_close", Value: lastClose, Reason: "division by zero"}
	}

	pctChange := (predictedClose - lastClose) / lastClose * 100

	switch {
	case pctChange > 2:
		return 90, nil
	case pctChange > 0.5:
		return 70, nil
	case pctChange > -0.5:
		return 50, nil
	case pctChange > -2:
		return 30, nil
	default:
		return 10, nil
	}
}
