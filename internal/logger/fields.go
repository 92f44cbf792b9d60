package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type floats []float32

func (f floats) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, v := range f {
		enc.AppendFloat32(v)
	}
	return nil
}

// Vec3 logs a 3-component vector as an array.
func Vec3(key string, v [3]float32) zap.Field {
	return zap.Array(key, floats(v[:]))
}

// Matrix logs a column-major 4x4 matrix as a flat array in row-major order.
func Matrix(key string, m [16]float32) zap.Field {
	rows := make(floats, 0, 16)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			rows = append(rows, m[col*4+row])
		}
	}
	return zap.Array(key, rows)
}
