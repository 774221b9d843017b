package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/ivlev/campath/internal/config"
	"github.com/ivlev/campath/internal/engine"
	"github.com/ivlev/campath/internal/system"
	"github.com/ivlev/campath/internal/trajectory"
)

const buildVersion = "1.0.0"

func main() {
	trajPtr := flag.String("traj", "all", "Список траекторий через запятую или all (free1..free5, orbit, swing1, swing2)")
	framesPtr := flag.Int("frames", 49, "Число кадров на траекторию")
	elevationPtr := flag.Float64("elevation", 10, "Начальный угол возвышения камеры в градусах")
	radiusPtr := flag.Float64("radius", 2.0, "Радиус орбиты камеры")
	focalPtr := flag.Float64("focal", 1.0, "Множитель фокусного расстояния к последнему кадру (1.0 — без зума)")
	widthPtr := flag.Int("width", 1280, "Ширина кадра для матрицы интринсиков")
	heightPtr := flag.Int("height", 720, "Высота кадра для матрицы интринсиков")
	flenPtr := flag.Float64("flen", 0, "Фокусное расстояние в пикселях (0 — по высоте кадра)")
	fpsPtr := flag.Int("fps", 16, "FPS в метаданных сценария")
	outPtr := flag.String("out", "output", "Директория для YAML-сценариев, превью и лога")
	previewPtr := flag.Bool("preview", false, "Рисовать PNG-превью траектории (вид сверху)")
	quietPtr := flag.Bool("quiet", false, "Отключить вывод логов")
	workersPtr := flag.Int("workers", 0, "Потоки (0 — автоматически по ресурсам машины)")

	flag.Parse()

	trajectories := trajectory.Names()
	if *trajPtr != "all" {
		trajectories = nil
		for _, name := range strings.Split(*trajPtr, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				trajectories = append(trajectories, name)
			}
		}
	}

	flen := *flenPtr
	if flen == 0 {
		flen = float64(*heightPtr)
	}

	workers := *workersPtr
	if workers == 0 {
		workers = system.OptimalWorkers()
	}

	cfg := &config.Config{
		Trajectories: trajectories,
		NFrame:       *framesPtr,
		Elevation:    *elevationPtr,
		Radius:       *radiusPtr,
		Focal:        *focalPtr,
		Width:        *widthPtr,
		Height:       *heightPtr,
		FocalPixels:  flen,
		FPS:          *fpsPtr,
		OutDir:       *outPtr,
		Preview:      *previewPtr,
		Quiet:        *quietPtr,
		Workers:      workers,
		BuildVersion: buildVersion,
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}

	// Создаем директорию вывода, если её нет
	if cfg.OutDir != "" {
		if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
			log.Fatalf("[-] Не удалось создать директорию %s: %v", cfg.OutDir, err)
		}
	}

	logger, done, err := system.NewLogger(cfg.OutDir, cfg.Quiet)
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации логгера: %v", err)
	}
	defer done()

	logger.Infof("[*] Синтез траекторий камеры: %s", strings.Join(cfg.Trajectories, ", "))
	logger.Infof("[*] Кадров: %d | Возвышение: %.1f° | Радиус: %.2f | Фокус: %.2f",
		cfg.NFrame, cfg.Elevation, cfg.Radius, cfg.Focal)

	// общая матрица интринсиков: фокус в пикселях, главная точка в центре кадра
	intrinsic := mat.NewDense(3, 3, []float64{
		cfg.FocalPixels, 0, float64(cfg.Width) / 2,
		0, cfg.FocalPixels, float64(cfg.Height) / 2,
		0, 0, 1,
	})

	jobs := make([]engine.Job, len(cfg.Trajectories))
	for i, name := range cfg.Trajectories {
		jobs[i] = engine.Job{
			Trajectory: name,
			NFrame:     cfg.NFrame,
			Elevation:  cfg.Elevation,
			Radius:     cfg.Radius,
			Focal:      cfg.Focal,
			Intrinsic:  intrinsic,
		}
	}

	batch := &engine.Batch{
		Log:          logger,
		Workers:      cfg.Workers,
		OutDir:       cfg.OutDir,
		Preview:      cfg.Preview,
		FPS:          cfg.FPS,
		BuildVersion: cfg.BuildVersion,
	}

	if _, err := batch.Run(context.Background(), jobs); err != nil {
		done()
		log.Fatalf("[-] Ошибка синтеза: %v", err)
	}

	fmt.Printf("[+++] Успех! Сценарии в: %s\n", cfg.OutDir)
}
