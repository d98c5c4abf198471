// Package progress хранит прогресс пользователя по flow.
//
// Прогресс адресуется только по flow_id. Save полностью заменяет
// сохранённое значение, Get для неизвестного flow возвращает пустой
// прогресс, а не ошибку.
//
// Бэкенды:
//
//	memory   — map под RWMutex, живёт до перезапуска процесса
//	redis    — JSON в ключе <prefix>progress:<flow_id>
//	postgres — таблица progress (JSONB)
//	sqlite   — таблица progress в файле (modernc.org/sqlite)
//	mongo    — коллекция progress, _id = flow_id
package progress
