package generation

import "github.com/Freeeeeet/psy_practice_bot/internal/model"

const sampleTranscription = `Patient: Je ne sais pas, c'est compliqué avec ma mère en ce moment. Nous nous disputons beaucoup.

Thérapeute: Pouvez-vous me parler davantage de votre relation avec votre mère?

Patient: Eh bien, elle a toujours été très exigeante. Mon père est plus détendu, mais il n'intervient jamais quand elle et moi nous disputons. Ma sœur Julie, elle, a toujours été la préférée.

Thérapeute: Et comment cela vous fait-il sentir?

Patient: Frustré, principalement. Et triste aussi. Mon grand-père paternel était la seule personne qui me soutenait vraiment, mais il est décédé l'année dernière. C'est lui qui m'a offert ma première guitare quand j'avais 10 ans.`

const sampleSessionSummary = `Le patient a exprimé des inquiétudes concernant sa relation avec sa mère, qu'il décrit comme exigeante et critique. Il se sent constamment comparé à sa sœur Julie.

Cette dynamique familiale a créé un sentiment profond d'insuffisance. Le décès récent de son grand-père paternel, figure de soutien importante, a exacerbé ses difficultés.`

var sampleStoryPages = []string{
	"Il était une fois un petit animal nommé Léo. Léo était un jeune renard très intelligent, mais qui avait beaucoup de mal à faire confiance aux autres animaux de la forêt.",
	"Un jour, alors qu'une tempête menaçait, Léo dut accepter l'aide d'autres animaux pour mettre son terrier à l'abri.",
	"Grâce à cette expérience, Léo comprit que faire confiance aux autres pouvait parfois être nécessaire et bénéfique.",
}

var sampleLeads = []string{
	"Explorer davantage les relations avec la figure maternelle",
	"Travailler sur les techniques de gestion de l'anxiété",
	"Approfondir le sentiment d'infériorité vis-à-vis de la sœur",
	"Aborder les stratégies d'affirmation de soi dans le contexte familial",
	"Explorer l'impact du décès du grand-père sur son système de soutien",
}

func sampleRelationships() []model.Relationship {
	return []model.Relationship{
		{
			Name:        "Mère",
			Relation:    "Relation parentale",
			Description: "Relation tendue et compliquée, avec des attentes élevées et des critiques fréquentes.",
			Connections: []string{"Père", "Sœur (Julie)"},
		},
		{
			Name:        "Père",
			Relation:    "Relation parentale",
			Description: "Relation plus détendue mais passive, n'intervient pas dans les conflits.",
			Connections: []string{"Mère"},
		},
		{
			Name:        "Sœur (Julie)",
			Relation:    "Relation fraternelle",
			Description: "Perçue comme 'la préférée', provoquant des sentiments de jalousie et d'injustice.",
			Connections: []string{"Mère", "Père"},
		},
		{
			Name:        "Grand-père paternel",
			Relation:    "Relation grand-parentale",
			Description: "Figure de soutien importante, décédé récemment. Lien affectif fort et mentor musical.",
			Connections: []string{"Père", "Grand-mère paternelle"},
		},
		{
			Name:        "Grand-mère paternelle",
			Relation:    "Relation grand-parentale",
			Description: "Relation positive mais limitée par des problèmes de santé.",
			Connections: []string{"Grand-père paternel", "Père"},
		},
	}
}

func sampleBackground() *model.BackgroundSummary {
	return &model.BackgroundSummary{
		Summary: "Le patient décrit une dynamique familiale complexe, marquée par une relation conflictuelle avec sa mère et un sentiment d'injustice face au traitement préférentiel accordé à sa sœur Julie. Le grand-père paternel représentait une figure de soutien et de mentorat importante, dont la perte récente a eu un impact significatif.",
		Sections: []model.BackgroundSection{
			{Title: "Enfance et éducation", Content: "A reçu sa première guitare à l'âge de 10 ans, offerte par son grand-père. Enfance marquée par des attentes élevées et une pression familiale."},
			{Title: "Influences et mentors", Content: "Le grand-père paternel a joué un rôle crucial dans son développement, particulièrement en lui transmettant sa passion pour la musique."},
			{Title: "Dynamique familiale", Content: "Sentiment d'être moins favorisé que sa sœur Julie. Relation conflictuelle avec sa mère et plus distante avec son père qui reste en retrait."},
			{Title: "Événements marquants", Content: "Le décès du grand-père l'année précédente représente une perte significative, privant le patient d'un soutien émotionnel important."},
		},
	}
}
