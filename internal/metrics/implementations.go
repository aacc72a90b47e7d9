// Concrete implementations of quality metrics
package metrics

import (
	"image"
	"math"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// PSNR implements Peak Signal-to-Noise Ratio metric
type PSNR struct{}

func NewPSNR() *PSNR {
	return &PSNR{}
}

func (p *PSNR) Calculate(original, processed gocv.Mat) (float64, error) {
	if err := validatePair(original, processed); err != nil {
		return 0, err
	}

	mse, err := meanSquaredError(original, processed)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}

	return 20 * math.Log10(255.0/math.Sqrt(mse)), nil
}

func (p *PSNR) GetName() string {
	return "PSNR"
}

func (p *PSNR) GetDescription() string {
	return "Peak Signal-to-Noise Ratio in dB"
}

func (p *PSNR) IsHigherBetter() bool {
	return true
}

// MSE implements Mean Squared Error metric
type MSE struct{}

func NewMSE() *MSE {
	return &MSE{}
}

func (m *MSE) Calculate(original, processed gocv.Mat) (float64, error) {
	if err := validatePair(original, processed); err != nil {
		return 0, err
	}
	return meanSquaredError(original, processed)
}

func (m *MSE) GetName() string {
	return "MSE"
}

func (m *MSE) GetDescription() string {
	return "Mean Squared Error over 8-bit samples"
}

func (m *MSE) IsHigherBetter() bool {
	return false
}

func meanSquaredError(original, processed gocv.Mat) (float64, error) {
	a, err := samples(original)
	if err != nil {
		return 0, err
	}
	b, err := samples(processed)
	if err != nil {
		return 0, err
	}

	sq := make([]float64, len(a))
	for i := range a {
		d := a[i] - b[i]
		sq[i] = d * d
	}
	return stat.Mean(sq, nil), nil
}

// samples flattens a single channel image into float64 values.
func samples(m gocv.Mat) ([]float64, error) {
	f := gocv.NewMat()
	defer f.Close()
	m.ConvertTo(&f, gocv.MatTypeCV32F)

	data, err := f.DataPtrFloat32()
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return out, nil
}

// SSIM implements Structural Similarity Index metric
type SSIM struct{}

func NewSSIM() *SSIM {
	return &SSIM{}
}

func (s *SSIM) Calculate(original, processed gocv.Mat) (float64, error) {
	if err := validatePair(original, processed); err != nil {
		return 0, err
	}

	// SSIM constants
	const (
		C1 = 6.5025  // (0.01 * 255)^2
		C2 = 58.5225 // (0.03 * 255)^2
	)

	f1 := gocv.NewMat()
	defer f1.Close()
	original.ConvertTo(&f1, gocv.MatTypeCV32F)

	f2 := gocv.NewMat()
	defer f2.Close()
	processed.ConvertTo(&f2, gocv.MatTypeCV32F)

	mu1 := blur(f1)
	defer mu1.Close()
	mu2 := blur(f2)
	defer mu2.Close()

	mu1Sq := product(mu1, mu1)
	defer mu1Sq.Close()
	mu2Sq := product(mu2, mu2)
	defer mu2Sq.Close()
	mu1Mu2 := product(mu1, mu2)
	defer mu1Mu2.Close()

	sigma1Sq := localMoment(f1, f1, mu1Sq)
	defer sigma1Sq.Close()
	sigma2Sq := localMoment(f2, f2, mu2Sq)
	defer sigma2Sq.Close()
	sigma12 := localMoment(f1, f2, mu1Mu2)
	defer sigma12.Close()

	// (2*mu1*mu2 + C1) * (2*sigma12 + C2)
	n1 := mu1Mu2.Clone()
	defer n1.Close()
	n1.MultiplyFloat(2)
	n1.AddFloat(C1)
	n2 := sigma12.Clone()
	defer n2.Close()
	n2.MultiplyFloat(2)
	n2.AddFloat(C2)
	numerator := product(n1, n2)
	defer numerator.Close()

	// (mu1^2 + mu2^2 + C1) * (sigma1^2 + sigma2^2 + C2)
	d1 := gocv.NewMat()
	defer d1.Close()
	gocv.Add(mu1Sq, mu2Sq, &d1)
	d1.AddFloat(C1)
	d2 := gocv.NewMat()
	defer d2.Close()
	gocv.Add(sigma1Sq, sigma2Sq, &d2)
	d2.AddFloat(C2)
	denominator := product(d1, d2)
	defer denominator.Close()

	ssimMap := gocv.NewMat()
	defer ssimMap.Close()
	gocv.Divide(numerator, denominator, &ssimMap)

	return ssimMap.Mean().Val1, nil
}

func (s *SSIM) GetName() string {
	return "SSIM"
}

func (s *SSIM) GetDescription() string {
	return "Structural Similarity Index"
}

func (s *SSIM) IsHigherBetter() bool {
	return true
}

func blur(src gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	gocv.GaussianBlur(src, &dst, image.Pt(11, 11), 1.5, 1.5, gocv.BorderDefault)
	return dst
}

func product(a, b gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Multiply(a, b, &dst)
	return dst
}

// localMoment returns blur(a*b) - meanProduct.
func localMoment(a, b, meanProduct gocv.Mat) gocv.Mat {
	ab := product(a, b)
	defer ab.Close()
	blurred := blur(ab)
	defer blurred.Close()

	dst := gocv.NewMat()
	gocv.Subtract(blurred, meanProduct, &dst)
	return dst
}
