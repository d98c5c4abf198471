// Package cli реализует инструмент командной строки Simplify.
//
// # Обзор
//
// CLI — клиентская утилита для Simplify API. Работает через HTTP
// и не импортирует внутренние пакеты сервера.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент API: запросы, разбор ответов и ошибок
// ({"error":{"code","message"}}).
//
//	client := cli.NewClient("http://localhost:8080")
//	flows, err := client.ListFlows()
//
// ## Output
//
// Форматирование вывода: таблицы (text/tabwriter) по умолчанию,
// JSON с флагом --json. Данные пишутся в stdout, сообщения в stderr:
//
//	simplify flow list --json | jq .
//
// ## Commands
//
// Cobra-команды по ресурсам:
//   - flow: list, show
//   - recommend
//   - progress: show, save, clear
//   - eligibility
//
// Группы создаются фабричными функциями (NewFlowCmd и т.д.), которые
// принимают clientFn и outputFn для ленивого создания Client и Output
// после разбора PersistentFlags.
package cli
