package system

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Сколько памяти закладываем на одну задачу синтеза (с большим запасом:
// сами матрицы занимают килобайты, основной расход — YAML и превью)
const perJobBytes = 64 << 20

// OptimalWorkers подбирает размер пула для пакетного синтеза: по числу
// физических ядер, но не больше, чем позволяет доступная память.
func OptimalWorkers() int {
	workers := runtime.NumCPU()
	if phys, err := cpu.Counts(false); err == nil && phys > 0 {
		workers = phys
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		byMem := int(vm.Available / perJobBytes)
		if byMem < 1 {
			byMem = 1
		}
		if byMem < workers {
			workers = byMem
		}
	}

	if workers < 1 {
		workers = 1
	}
	return workers
}

// NewLogger собирает логгер процесса: консольный вывод в stdout и, если
// задана директория, дублирование в файл log.txt внутри неё. В тихом
// режиме возвращается no-op логгер. Возвращаемую функцию нужно вызвать
// при завершении работы.
func NewLogger(dir string, quiet bool) (*zap.SugaredLogger, func(), error) {
	if quiet {
		return zap.NewNop().Sugar(), func() {}, nil
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc := zapcore.NewConsoleEncoder(encCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), zapcore.InfoLevel),
	}

	closeFile := func() {}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, errors.Wrapf(err, "не удалось создать директорию %s", dir)
		}
		f, err := os.OpenFile(filepath.Join(dir, "log.txt"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "не удалось открыть файл лога")
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(f), zapcore.InfoLevel))
		closeFile = func() { f.Close() }
	}

	logger := zap.New(zapcore.NewTee(cores...))
	done := func() {
		_ = logger.Sync()
		closeFile()
	}
	return logger.Sugar(), done, nil
}
