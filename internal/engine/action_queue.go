package engine

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"trickntreat-server/pkg/logger"
)

// ActionUnit - именованная единица работы в очереди. Имя нужно только
// для логов и дебага.
type ActionUnit struct {
	Name string
	Run  func()
}

// ActionQueue - последовательная очередь игровых действий.
// Единственная горутина-потребитель выполняет юниты по одному в порядке
// FIFO, с настраиваемой паузой между ними (в тестах - ноль).
//
// Паника внутри юнита не убивает очередь: юнит считается выполненным,
// обработка продолжается со следующего.
type ActionQueue struct {
	mu    sync.Mutex
	items []ActionUnit

	paused bool

	wake chan struct{}
	stop chan struct{}

	delay time.Duration

	// OnStep вызывается после каждого выполненного юнита,
	// OnIdle - когда очередь опустела. Оба - вне внутреннего лока.
	OnStep func()
	OnIdle func()

	log *logrus.Entry
}

func NewActionQueue(delay time.Duration) *ActionQueue {
	return &ActionQueue{
		wake:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		delay: delay,
		log:   logger.WithComponent("queue"),
	}
}

// Start запускает горутину-потребителя.
func (q *ActionQueue) Start() {
	go q.run()
}

// Stop останавливает потребителя. Оставшиеся юниты не выполняются.
func (q *ActionQueue) Stop() {
	close(q.stop)
}

// Enqueue добавляет юнит в конец очереди.
func (q *ActionQueue) Enqueue(name string, fn func()) {
	q.insert(-1, name, fn)
}

// EnqueueFront вставляет юнит в начало: он выполнится раньше всего,
// что уже запланировано.
func (q *ActionQueue) EnqueueFront(name string, fn func()) {
	q.insert(0, name, fn)
}

// EnqueueAt вставляет юнит на заданную позицию. Индекс за пределами
// очереди прижимается к ближайшему краю.
func (q *ActionQueue) EnqueueAt(idx int, name string, fn func()) {
	if idx < 0 {
		idx = 0
	}
	q.insert(idx, name, fn)
}

// insert вставляет юнит на позицию idx (-1 = в конец) и будит потребителя.
func (q *ActionQueue) insert(idx int, name string, fn func()) {
	q.mu.Lock()
	if idx < 0 || idx > len(q.items) {
		idx = len(q.items)
	}
	unit := ActionUnit{Name: name, Run: fn}
	q.items = append(q.items, ActionUnit{})
	copy(q.items[idx+1:], q.items[idx:])
	q.items[idx] = unit
	q.mu.Unlock()

	q.signal()
}

// Clear выбрасывает все запланированные юниты. Уже выполняющийся юнит
// не прерывается.
func (q *ActionQueue) Clear() {
	q.mu.Lock()
	q.items = q.items[:0]
	q.mu.Unlock()
}

// Len возвращает число ожидающих юнитов.
func (q *ActionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Pause приостанавливает выполнение. Юниты копятся в очереди.
func (q *ActionQueue) Pause() {
	q.mu.Lock()
	q.paused = true
	q.mu.Unlock()
}

// Resume возобновляет выполнение.
func (q *ActionQueue) Resume() {
	q.mu.Lock()
	q.paused = false
	q.mu.Unlock()

	q.signal()
}

func (q *ActionQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *ActionQueue) run() {
	for {
		select {
		case <-q.stop:
			return
		case <-q.wake:
		}

		for {
			unit, ok := q.next()
			if !ok {
				break
			}

			q.execute(unit)

			if q.OnStep != nil {
				q.OnStep()
			}

			if q.delay > 0 {
				select {
				case <-q.stop:
					return
				case <-time.After(q.delay):
				}
			}
		}

		// Сигнал мог прийти между next() и этой проверкой - тогда
		// idle не объявляем, wake уже взведен и цикл продолжится.
		if q.Len() == 0 && !q.isPaused() && q.OnIdle != nil {
			q.OnIdle()
		}
	}
}

func (q *ActionQueue) next() (ActionUnit, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.paused || len(q.items) == 0 {
		return ActionUnit{}, false
	}

	unit := q.items[0]
	q.items = q.items[1:]
	return unit, true
}

func (q *ActionQueue) isPaused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.paused
}

// execute выполняет юнит, перехватывая панику. Упавший юнит логируется
// и пропускается, очередь продолжает работу.
func (q *ActionQueue) execute(unit ActionUnit) {
	defer func() {
		if r := recover(); r != nil {
			q.log.WithFields(logrus.Fields{
				"unit":  unit.Name,
				"panic": r,
			}).Error("Action unit panicked, skipping")
		}
	}()

	unit.Run()
}
