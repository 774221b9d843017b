package engine

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/ivlev/campath/internal/camera"
	"github.com/ivlev/campath/internal/preview"
	"github.com/ivlev/campath/internal/scenario"
	"github.com/ivlev/campath/internal/trajectory"
)

// previewSize — сторона PNG-превью в пикселях
const previewSize = 512

// Job описывает один синтез: траектория и параметры начальной камеры
type Job struct {
	Trajectory string
	NFrame     int
	Elevation  float64
	Radius     float64
	Focal      float64
	Intrinsic  *mat.Dense
}

// Result — готовая траектория и пути к артефактам на диске
type Result struct {
	Job          Job
	Path         *camera.Path
	ScenarioFile string
	PreviewFile  string
	Elapsed      time.Duration
}

// Batch прогоняет пакет задач синтеза через пул воркеров. Реестр
// траекторий читается конкурентно без блокировок, всё состояние задачи
// локально.
type Batch struct {
	Log          *zap.SugaredLogger
	Workers      int
	OutDir       string // куда писать YAML-сценарии; пусто — не писать
	Preview      bool   // рисовать PNG-превью вида сверху
	FPS          int
	BuildVersion string
}

// Run выполняет все задачи и возвращает результаты в порядке задач.
// Первая ошибка отменяет оставшиеся задачи.
func (b *Batch) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	if len(jobs) == 0 {
		return nil, errors.New("пакет задач пуст")
	}

	workers := b.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	b.Log.Infof("--- [CAMPATH ENGINE] ---")
	b.Log.Infof("[*] Задач: %d | Потоков: %d", len(jobs), workers)

	start := time.Now()
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := b.runJob(job)
			if err != nil {
				b.Log.Infof("[!] %s: %v", job.Trajectory, err)
				return err
			}

			results[i] = res
			b.Log.Infof("[>] Готово: %s (%d кадров, %.1f мс)",
				job.Trajectory, job.NFrame, float64(res.Elapsed.Microseconds())/1000)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.report(results, time.Since(start))
	return results, nil
}

// runJob синтезирует одну траекторию и пишет её артефакты
func (b *Batch) runJob(job Job) (Result, error) {
	jobStart := time.Now()

	arch, err := trajectory.Lookup(job.Trajectory)
	if err != nil {
		return Result{}, err
	}

	pose, err := camera.InitialPose(job.Elevation, job.Radius)
	if err != nil {
		return Result{}, errors.Wrapf(err, "начальная камера для %s", job.Trajectory)
	}

	path, err := camera.BuildPath(arch, pose, []*mat.Dense{job.Intrinsic}, job.NFrame, job.Focal, job.Radius)
	if err != nil {
		return Result{}, errors.Wrapf(err, "синтез траектории %s", job.Trajectory)
	}

	res := Result{Job: job, Path: path, Elapsed: time.Since(jobStart)}

	if b.OutDir != "" {
		// Убеждаемся, что директория существует
		if err := os.MkdirAll(b.OutDir, 0755); err != nil {
			return Result{}, errors.Wrapf(err, "директория вывода %s", b.OutDir)
		}

		s := scenario.FromPath(path, scenario.Meta{
			Trajectory: arch.Name,
			Family:     arch.Family.String(),
			FPS:        b.FPS,
			Elevation:  job.Elevation,
			Radius:     job.Radius,
			Focal:      job.Focal,
		})
		res.ScenarioFile = filepath.Join(b.OutDir, scenario.Filename(arch.Name, job.NFrame))
		if err := scenario.Write(s, res.ScenarioFile); err != nil {
			return Result{}, err
		}

		if b.Preview {
			img := preview.Render(path, previewSize)
			res.PreviewFile = filepath.Join(b.OutDir, arch.Name+".png")
			if err := preview.WritePNG(res.PreviewFile, img); err != nil {
				return Result{}, err
			}
		}
	}

	res.Elapsed = time.Since(jobStart)
	return res, nil
}

// report печатает сводку по выполненному пакету
func (b *Batch) report(results []Result, total time.Duration) {
	frames := 0
	for _, r := range results {
		frames += len(r.Path.W2Cs)
	}
	fps := float64(frames) / total.Seconds()

	b.Log.Infof("--- [PERFORMANCE REPORT] ---")
	b.Log.Infof("Build: %s", b.BuildVersion)
	b.Log.Infof("Траекторий: %d | Кадров: %d", len(results), frames)
	b.Log.Infof("Общее время: %.2f мс", total.Seconds()*1000)
	b.Log.Infof("Кадров в секунду: %.0f", fps)
	b.Log.Infof("----------------------------")
}
