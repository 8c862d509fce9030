package schedule

// Pairing - одна сгенерированная пара расписания. Первая команда пары
// назначается хозяином, вторая - гостем; это следствие порядка входного
// списка, а не спортивного посева.
type Pairing struct {
	HomeTeamID  int
	AwayTeamID  int
	MatchNumber int
}

type Generator interface {
	// Generate принимает упорядоченный список ID команд и возвращает
	// пары в фиксированном воспроизводимом порядке. Для len(teamIDs) < 2
	// возвращается пустой срез; минимум команд проверяет вызывающий.
	Generate(teamIDs []int) []Pairing

	GetName() string
}
