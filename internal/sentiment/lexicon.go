package sentiment

// lexicon maps lowercase words to valence scores on the usual -4..4
// scale. This is a compact cut of the VADER lexicon biased toward
// market and news vocabulary.
var lexicon = map[string]float64{
	// positive
	"gain":         1.6,
	"gains":        1.6,
	"gained":       1.6,
	"surge":        1.9,
	"surges":       1.9,
	"surged":       1.9,
	"soar":         2.0,
	"soars":        2.0,
	"soared":       2.0,
	"rally":        1.7,
	"rallies":      1.7,
	"rallied":      1.7,
	"jump":         1.4,
	"jumps":        1.4,
	"jumped":       1.4,
	"climb":        1.3,
	"climbs":       1.3,
	"climbed":      1.3,
	"rise":         1.2,
	"rises":        1.2,
	"rose":         1.2,
	"boom":         1.8,
	"booming":      1.8,
	"record":       1.1,
	"beat":         1.5,
	"beats":        1.5,
	"strong":       1.6,
	"stronger":     1.7,
	"strongest":    1.8,
	"growth":       1.5,
	"grow":         1.3,
	"grows":        1.3,
	"profit":       1.7,
	"profits":      1.7,
	"profitable":   1.8,
	"win":          2.0,
	"wins":         2.0,
	"winner":       2.1,
	"success":      2.2,
	"successful":   2.2,
	"upgrade":      1.4,
	"upgraded":     1.4,
	"bullish":      1.9,
	"optimistic":   1.6,
	"optimism":     1.6,
	"positive":     1.8,
	"good":         1.9,
	"great":        2.5,
	"excellent":    2.7,
	"best":         2.6,
	"improve":      1.5,
	"improves":     1.5,
	"improved":     1.5,
	"recovery":     1.4,
	"recover":      1.3,
	"recovers":     1.3,
	"outperform":   1.7,
	"outperforms":  1.7,
	"exceed":       1.4,
	"exceeds":      1.4,
	"exceeded":     1.4,
	"boost":        1.5,
	"boosts":       1.5,
	"boosted":      1.5,
	"opportunity":  1.4,
	"confident":    1.7,
	"confidence":   1.6,
	"breakthrough": 2.1,
	"innovative":   1.5,
	"robust":       1.4,
	"momentum":     1.0,
	"upside":       1.3,
	"dividend":     0.8,
	"expansion":    1.1,
	"approval":     1.3,
	"approved":     1.3,

	// negative
	"loss":          -1.7,
	"losses":        -1.7,
	"lose":          -1.6,
	"loses":         -1.6,
	"lost":          -1.6,
	"crash":         -2.4,
	"crashes":       -2.4,
	"crashed":       -2.4,
	"plunge":        -2.1,
	"plunges":       -2.1,
	"plunged":       -2.1,
	"plummet":       -2.2,
	"plummets":      -2.2,
	"plummeted":     -2.2,
	"tumble":        -1.8,
	"tumbles":       -1.8,
	"tumbled":       -1.8,
	"sink":          -1.6,
	"sinks":         -1.6,
	"sank":          -1.6,
	"slump":         -1.8,
	"slumps":        -1.8,
	"slumped":       -1.8,
	"fall":          -1.3,
	"falls":         -1.3,
	"fell":          -1.3,
	"drop":          -1.2,
	"drops":         -1.2,
	"dropped":       -1.2,
	"decline":       -1.4,
	"declines":      -1.4,
	"declined":      -1.4,
	"weak":          -1.5,
	"weaker":        -1.6,
	"weakest":       -1.7,
	"miss":          -1.4,
	"misses":        -1.4,
	"missed":        -1.4,
	"fear":          -1.9,
	"fears":         -1.9,
	"panic":         -2.3,
	"crisis":        -2.2,
	"recession":     -2.0,
	"bankrupt":      -2.6,
	"bankruptcy":    -2.6,
	"default":       -1.8,
	"debt":          -1.0,
	"downgrade":     -1.5,
	"downgraded":    -1.5,
	"bearish":       -1.9,
	"pessimistic":   -1.6,
	"negative":      -1.8,
	"bad":           -1.9,
	"worse":         -2.1,
	"worst":         -2.6,
	"terrible":      -2.5,
	"awful":         -2.4,
	"fail":          -2.0,
	"fails":         -2.0,
	"failed":        -2.0,
	"failure":       -2.1,
	"fraud":         -2.8,
	"scandal":       -2.3,
	"lawsuit":       -1.6,
	"layoff":        -1.9,
	"layoffs":       -1.9,
	"cut":           -0.9,
	"cuts":          -0.9,
	"warning":       -1.4,
	"warns":         -1.4,
	"warned":        -1.4,
	"risk":          -1.1,
	"risks":         -1.1,
	"risky":         -1.3,
	"volatile":      -1.2,
	"volatility":    -1.1,
	"uncertainty":   -1.4,
	"uncertain":     -1.3,
	"concern":       -1.2,
	"concerns":      -1.2,
	"concerned":     -1.3,
	"trouble":       -1.7,
	"troubled":      -1.8,
	"collapse":      -2.4,
	"collapsed":     -2.4,
	"selloff":       -1.7,
	"sell-off":      -1.7,
	"downturn":      -1.6,
	"investigation": -1.3,
	"penalty":       -1.4,
	"fined":         -1.5,
	"halt":          -1.2,
	"halted":        -1.2,
	"suspend":       -1.4,
	"suspended":     -1.4,
}

// boosters amplify or dampen the valence of the word they precede.
var boosters = map[string]float64{
	"absolutely":    0.293,
	"amazingly":     0.293,
	"completely":    0.293,
	"considerably":  0.293,
	"decidedly":     0.293,
	"deeply":        0.293,
	"enormously":    0.293,
	"especially":    0.293,
	"exceptionally": 0.293,
	"extremely":     0.293,
	"greatly":       0.293,
	"highly":        0.293,
	"hugely":        0.293,
	"incredibly":    0.293,
	"majorly":       0.293,
	"massively":     0.293,
	"particularly":  0.293,
	"really":        0.293,
	"remarkably":    0.293,
	"sharply":       0.293,
	"significantly": 0.293,
	"strongly":      0.293,
	"substantially": 0.293,
	"totally":       0.293,
	"tremendously":  0.293,
	"unusually":     0.293,
	"very":          0.293,
	"wildly":        0.293,

	"almost":     -0.293,
	"barely":     -0.293,
	"hardly":     -0.293,
	"kind of":    -0.293,
	"kinda":      -0.293,
	"less":       -0.293,
	"little":     -0.293,
	"marginally": -0.293,
	"moderately": -0.293,
	"modestly":   -0.293,
	"partly":     -0.293,
	"scarcely":   -0.293,
	"slightly":   -0.293,
	"somewhat":   -0.293,
	"sort of":    -0.293,
}

// negations flip the valence of the word they precede.
var negations = map[string]bool{
	"not":       true,
	"no":        true,
	"never":     true,
	"neither":   true,
	"nor":       true,
	"none":      true,
	"nothing":   true,
	"without":   true,
	"isn't":     true,
	"isnt":      true,
	"aren't":    true,
	"arent":     true,
	"wasn't":    true,
	"wasnt":     true,
	"won't":     true,
	"wont":      true,
	"don't":     true,
	"dont":      true,
	"doesn't":   true,
	"doesnt":    true,
	"didn't":    true,
	"didnt":     true,
	"can't":     true,
	"cant":      true,
	"cannot":    true,
	"couldn't":  true,
	"couldnt":   true,
	"hasn't":    true,
	"hasnt":     true,
	"haven't":   true,
	"havent":    true,
	"wouldn't":  true,
	"wouldnt":   true,
	"shouldn't": true,
	"shouldnt":  true,
	"lacks":     true,
	"lacking":   true,
	"despite":   true,
}
