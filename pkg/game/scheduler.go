package game

import (
	"log"
	"sort"
)

// TimerID 定时器标识，0 表示无效
type TimerID int

type timer struct {
	id       TimerID
	due      float64
	interval float64 // 0 表示一次性
	seq      int     // 同一时刻到期时按注册顺序触发
	fn       func()
}

// Scheduler 基于模拟时间的定时器
//
// 所有延迟生成（周期发射火箭、惊喜文字序列等）都通过 Scheduler 注册，
// 场景销毁时调用 Reset 即可取消全部回调，不会泄漏到已销毁的场景。
// 回调在 Update 内同步执行；回调中注册的新定时器最早在下一次 Update 触发。
type Scheduler struct {
	now    float64
	nextID TimerID
	seq    int
	timers map[TimerID]*timer
}

// NewScheduler 创建空的定时器
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[TimerID]*timer)}
}

// Now 返回调度器的当前模拟时间（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// After 在 delay 秒后执行一次 fn
func (s *Scheduler) After(delay float64, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	return s.add(delay, 0, fn)
}

// Every 每隔 interval 秒执行一次 fn，首次在 interval 秒后
// interval <= 0 时不注册并返回 0
func (s *Scheduler) Every(interval float64, fn func()) TimerID {
	if interval <= 0 {
		log.Printf("[Scheduler] Warning: ignoring repeating timer with interval %v", interval)
		return 0
	}
	return s.add(interval, interval, fn)
}

func (s *Scheduler) add(delay, interval float64, fn func()) TimerID {
	if fn == nil {
		return 0
	}
	s.nextID++
	s.seq++
	s.timers[s.nextID] = &timer{
		id:       s.nextID,
		due:      s.now + delay,
		interval: interval,
		seq:      s.seq,
		fn:       fn,
	}
	return s.nextID
}

// Cancel 取消定时器，返回定时器是否仍在等待
func (s *Scheduler) Cancel(id TimerID) bool {
	if _, ok := s.timers[id]; !ok {
		return false
	}
	delete(s.timers, id)
	return true
}

// Reset 取消全部定时器并把时间归零
func (s *Scheduler) Reset() {
	if n := len(s.timers); n > 0 {
		log.Printf("[Scheduler] Cancelled %d pending timers", n)
	}
	s.timers = make(map[TimerID]*timer)
	s.now = 0
}

// Pending 返回等待中的定时器数量
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Update 推进模拟时间并按到期顺序执行回调
//
// 重复定时器在一次较长的 dt 内可能触发多次，以追上错过的周期。
func (s *Scheduler) Update(dt float64) {
	if dt > 0 {
		s.now += dt
	}
	barrier := s.nextID

	for {
		due := s.dueTimers(barrier)
		if len(due) == 0 {
			return
		}
		for _, t := range due {
			// 前面的回调可能已经取消了它
			if _, ok := s.timers[t.id]; !ok {
				continue
			}
			if t.interval > 0 {
				t.due += t.interval
				t.seq = s.nextSeq()
			} else {
				delete(s.timers, t.id)
			}
			t.fn()
		}
	}
}

func (s *Scheduler) nextSeq() int {
	s.seq++
	return s.seq
}

// dueTimers 返回本轮到期的定时器（不含本次 Update 中新注册的）
func (s *Scheduler) dueTimers(barrier TimerID) []*timer {
	var due []*timer
	for _, t := range s.timers {
		if t.due <= s.now && t.id <= barrier {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	return due
}
