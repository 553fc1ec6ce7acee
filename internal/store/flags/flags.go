// Package flags реализует синхронное плоское хранилище флагов сессии.
//
// Флаги нужны UI на самом первом кадре, до того как успеет отработать
// асинхронное чтение из структурированного кэша, поэтому чтения идут
// из памяти без какого-либо I/O. Файл на диске переживает перезапуски.
// Единственный пишущий — менеджер сессии; весь набор флагов
// записывается одной атомарной заменой файла, так что расхождение
// отдельных полей невозможно.
package flags

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Flags фиксированный набор полей сессии для мгновенного чтения.
// Имена json повторяют ключи localStorage исходного дашборда.
type Flags struct {
	AuthToken      string          `json:"authToken,omitempty"`
	UserType       string          `json:"userType,omitempty"`
	UserID         string          `json:"userId,omitempty"`
	UserPlanStatus string          `json:"userPlanStatus,omitempty"`
	Authenticated  bool            `json:"dashboardAuthenticated,omitempty"`
	UserData       json.RawMessage `json:"userData,omitempty"`
	// DashboardUser устаревший блоб, который до сих пор читают старые
	// компоненты UI.
	DashboardUser json.RawMessage `json:"dashboardUser,omitempty"`
	// DeviceID идентификатор установки; переживает логаут.
	DeviceID string `json:"deviceId,omitempty"`
}

// Store файловое хранилище флагов с копией в памяти.
type Store struct {
	path string

	mu  sync.RWMutex
	cur Flags
}

// New открывает хранилище. Существующий файл подхватывается; нечитаемый
// или повреждённый файл трактуется как пустой набор флагов, а не как
// фатальная ошибка.
func New(path string) (*Store, error) {
	const op = "flags.New"

	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if jsonErr := json.Unmarshal(data, &s.cur); jsonErr != nil {
		// Повреждённый кэш не блокирует запуск
		s.cur = Flags{}
	}
	return s, nil
}

// Get возвращает текущий набор флагов. Чтение синхронное, из памяти.
func (s *Store) Get() Flags {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Set заменяет весь набор флагов и атомарно сбрасывает его на диск.
func (s *Store) Set(f Flags) error {
	const op = "flags.Set"

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.writeAtomic(data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.cur = f
	return nil
}

// Clear стирает флаги сессии, сохраняя идентификатор установки.
func (s *Store) Clear() error {
	const op = "flags.Clear"

	s.mu.Lock()
	deviceID := s.cur.DeviceID
	s.mu.Unlock()

	if err := s.Set(Flags{DeviceID: deviceID}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".flags-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
