// Package catalog содержит файловый каталог flows и шагов.
//
// Включает:
//   - loader.go        — чтение YAML-документов
//   - flow_repo.go     — перечисление и загрузка flows
//   - resolver.go      — сборка шагов flow по ссылкам
//   - validate.go      — проверка обязательных полей flow
//   - eligibility.go   — документ правил подбора (rules/immigration/eligibility.yaml)
//   - audit.go         — проверка целостности ссылок flow → шаг
//   - preconditions.go — граф предусловий шагов внутри flow
//
// Данные неизменяемы и перечитываются с диска на каждый запрос: кеша нет.
package catalog
