package fixed

import "math"

const (
	// BUCKET_SIZE is the number of consecutive angle units sharing one table entry
	BUCKET_SIZE = 16
	// TABLE_SIZE is the number of distinct entries in the engine's trigonometry table
	TABLE_SIZE = 65536 / BUCKET_SIZE
)

// Angle is a rotation amount where 65536 units make a full turn
type Angle uint16

// Bucket truncates the angle down to the table resolution
func (a Angle) Bucket() Angle {
	return a &^ (BUCKET_SIZE - 1)
}

// Radians converts the truncated angle to radians
func (a Angle) Radians() float64 {
	return float64(a.Bucket()) / 65536 * math.Pi * 2
}

var (
	sinTable [TABLE_SIZE]float32
	cosTable [TABLE_SIZE]float32
)

func init() {
	for i := 0; i < TABLE_SIZE; i++ {
		rad := Angle(i * BUCKET_SIZE).Radians()
		sinTable[i] = float32(math.Sin(rad))
		cosTable[i] = float32(math.Cos(rad))
	}
}

// Sin returns the engine's sine of the angle
func Sin(a Angle) float32 {
	return sinTable[a/BUCKET_SIZE]
}

// Cos returns the engine's cosine of the angle
func Cos(a Angle) float32 {
	return cosTable[a/BUCKET_SIZE]
}
