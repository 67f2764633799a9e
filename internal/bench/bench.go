package bench

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/xuhaidong1/idgen/pkg/snowflake"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// 每个任务生成的 id 数
const chunkSize = 1024

type Generator interface {
	Generate() (snowflake.ID, error)
}

// Report NonMonotonic 是同一任务内后一个 id 不大于前一个的次数
type Report struct {
	Total        int           `json:"total"`
	Unique       int           `json:"unique"`
	Duplicates   int           `json:"duplicates"`
	Errors       int           `json:"errors"`
	NonMonotonic int           `json:"non_monotonic"`
	Elapsed      time.Duration `json:"elapsed"`
}

func (r Report) OK() bool {
	return r.Duplicates == 0 && r.Errors == 0 && r.NonMonotonic == 0
}

// Rate 每秒生成的 id 数
func (r Report) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Total) / r.Elapsed.Seconds()
}

type Args struct {
	N   int
	Wg  *sync.WaitGroup
	Out chan<- Result
}

// Result 一个任务的产出
type Result struct {
	ids          []snowflake.ID
	errs         int
	nonMonotonic int
}

// Runner 用 ants 协程池并发调用同一个发号器，检查唯一性和单调性
type Runner struct {
	gen      Generator
	workPool *ants.MultiPoolWithFunc
	workers  int
	logger   *zap.Logger
}

func NewRunner(gen Generator, workers int, logger *zap.Logger) (*Runner, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("workers %d must be positive", workers)
	}
	r := &Runner{
		gen:     gen,
		workers: workers,
		logger:  logger,
	}
	mpf, err := ants.NewMultiPoolWithFunc(workers, 1, func(a interface{}) {
		args := a.(Args)
		r.Work(args)
	}, ants.RoundRobin, ants.WithPanicHandler(func(p interface{}) {
		r.logger.Error("Runner", zap.Any("panic", p))
	}))
	if err != nil {
		return nil, err
	}
	r.workPool = mpf
	return r, nil
}

func (r *Runner) Work(args Args) {
	defer args.Wg.Done()
	res := Result{ids: make([]snowflake.ID, 0, args.N)}
	var last snowflake.ID = -1
	for i := 0; i < args.N; i++ {
		id, err := r.gen.Generate()
		if err != nil {
			res.errs++
			continue
		}
		if id <= last {
			res.nonMonotonic++
		}
		last = id
		res.ids = append(res.ids, id)
	}
	args.Out <- res
}

// Run 一共生成 count 个 id。ctx 取消后不再提交新任务，已提交的任务会跑完。
func (r *Runner) Run(ctx context.Context, count int) (Report, error) {
	var (
		report Report
		wg     sync.WaitGroup
		eg     errgroup.Group
	)
	out := make(chan Result, r.workers)
	seen := make(map[snowflake.ID]struct{}, count)
	eg.Go(func() error {
		for res := range out {
			report.Errors += res.errs
			report.NonMonotonic += res.nonMonotonic
			for _, id := range res.ids {
				report.Total++
				if _, ok := seen[id]; ok {
					report.Duplicates++
					continue
				}
				seen[id] = struct{}{}
			}
		}
		report.Unique = len(seen)
		return nil
	})

	start := time.Now()
	var submitErr error
	for remaining := count; remaining > 0; {
		if ctx.Err() != nil {
			break
		}
		n := min(chunkSize, remaining)
		wg.Add(1)
		if err := r.workPool.Invoke(Args{N: n, Wg: &wg, Out: out}); err != nil {
			wg.Done()
			submitErr = err
			break
		}
		remaining -= n
	}
	wg.Wait()
	close(out)
	_ = eg.Wait()
	report.Elapsed = time.Since(start)

	r.logger.Info("Runner", zap.Int("total", report.Total), zap.Int("duplicates", report.Duplicates),
		zap.Int("errors", report.Errors), zap.Duration("elapsed", report.Elapsed))
	if submitErr != nil {
		return report, fmt.Errorf("submit task: %w", submitErr)
	}
	return report, ctx.Err()
}

func (r *Runner) Release(timeout time.Duration) error {
	err := r.workPool.ReleaseTimeout(timeout)
	if err != nil && !errors.Is(err, ants.ErrPoolClosed) {
		return err
	}
	return nil
}
