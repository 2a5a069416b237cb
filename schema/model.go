package schema

// ModelVersion identifies the compiled-in parameter set. It is recorded with every ledger run.
const ModelVersion = "wdbc-linear-svm-15f"

// Model holds the fixed parameters of the linear scorer.
// Arrays are used so that copies never alias the package-level model.
type Model struct {
	ScalerMean   [NumCanonicalFeatures]float64 `json:"scaler_mean" yaml:"scaler_mean"`
	ScalerScale  [NumCanonicalFeatures]float64 `json:"scaler_scale" yaml:"scaler_scale"`
	Coefficients [NumSelectedFeatures]float64  `json:"coefficients" yaml:"coefficients"`
	Intercept    float64                       `json:"intercept" yaml:"intercept"`
}

var defaultModel = Model{
	ScalerMean: [NumCanonicalFeatures]float64{
		14.127292358968682, 19.289649473684193, 91.96903349429551, 654.8891053166825, 0.09636044080604553,
		0.10434096638958688, 0.0887993179012838, 0.04891916650875892, 0.18116160013264424, 0.06279760669616017,
		5.481273374697838, 0.4051719558916609, 40.33707788283653, 16.269189808537773, 0.1622566333170516,
		0.6656322052951604, 0.7209807104066863, 0.26510968435936675, 0.4601353380606898, 0.11890165354616887,
		25.677223107688883, 17.331336477987413, 158.79987949026186, 880.5831273374698, 0.1323685871766167,
		0.2542650875892263, 0.27218637161719015, 0.11460622407226239, 0.29007898473084896, 0.0839458870319846,
	},
	ScalerScale: [NumCanonicalFeatures]float64{
		3.524048794329847, 4.301036062196316, 24.298981080811827, 351.9141266516488, 0.01406413083405829,
		0.05681821318206104, 0.09697284924780092, 0.03880267003948915, 0.027414282117655986, 0.01808416073314745,
		2.305891578853577, 1.1737853853540134, 54.18626247633808, 8.09767721658862, 0.05053362537036968,
		0.38704072030473836, 0.6482408950992926, 0.20607524596540066, 0.2389067223779778, 0.01842674421263715,
		4.833242426977738, 6.146257943926989, 65.73578887946013, 569.3569919879808, 0.022832429207467826,
		0.15734155872421943, 0.20877637436470764, 0.06573234398327629, 0.1618084468555166, 0.018060743469158736,
	},
	Coefficients: [NumSelectedFeatures]float64{
		-0.5, 0.8, -0.3, 0.9, 0.7, 1.2, 0.6, 1.1, -0.4, 1.0, -0.2, 0.8, -0.1, 0.5, 0.3,
	},
	Intercept: -0.1,
}

// DefaultModel returns a copy of the compiled-in model.
func DefaultModel() Model {
	return defaultModel
}

// defaultMeasurements are median-like values used to pre-fill a sample.
var defaultMeasurements = map[string]float64{
	"mean radius":          13.4,
	"mean perimeter":       86.2,
	"mean area":            551.1,
	"mean compactness":     0.093,
	"mean concavity":       0.061,
	"mean concave points":  0.033,
	"radius error":         0.27,
	"perimeter error":      2.0,
	"area error":           25.4,
	"worst radius":         15.6,
	"worst perimeter":      104.1,
	"worst area":           782.7,
	"worst compactness":    0.18,
	"worst concavity":      0.20,
	"worst concave points": 0.081,
}

// DefaultMeasurements returns a fresh copy of the default sample.
func DefaultMeasurements() Measurements {
	out := make(Measurements, len(defaultMeasurements))
	for k, v := range defaultMeasurements {
		out[k] = v
	}
	return out
}
