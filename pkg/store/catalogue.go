/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package store

const imageBase = "https://code.s3.yandex.net/react/code/"

func ingredient(id, name, kind, image string, proteins, fat, carbohydrates, calories, price int) Ingredient {
	return Ingredient{
		ID:            id,
		Name:          name,
		Type:          kind,
		Proteins:      proteins,
		Fat:           fat,
		Carbohydrates: carbohydrates,
		Calories:      calories,
		Price:         price,
		Image:         imageBase + image + ".png",
		ImageMobile:   imageBase + image + "-mobile.png",
		ImageLarge:    imageBase + image + "-large.png",
	}
}

// DefaultIngredients returns the catalogue served by the public service.
func DefaultIngredients() []Ingredient {
	return []Ingredient{
		ingredient("61c0c5a71d1f82001bdaaa6d", "Флюоресцентная булка R2-D3", "bun", "bun-01", 44, 26, 85, 643, 988),
		ingredient("61c0c5a71d1f82001bdaaa6c", "Краторная булка N-200i", "bun", "bun-02", 80, 24, 53, 420, 1255),
		ingredient("61c0c5a71d1f82001bdaaa6f", "Мясо бессмертных моллюсков Protostomia", "main", "meat-02", 433, 244, 33, 420, 1337),
		ingredient("61c0c5a71d1f82001bdaaa70", "Говяжий метеорит (отбивная)", "main", "meat-04", 800, 800, 300, 2674, 3000),
		ingredient("61c0c5a71d1f82001bdaaa71", "Биокотлета из марсианской Магнолии", "main", "meat-01", 420, 142, 242, 4242, 424),
		ingredient("61c0c5a71d1f82001bdaaa6e", "Филе Люминесцентного тетраодонтимформа", "main", "meat-03", 44, 26, 85, 643, 988),
		ingredient("61c0c5a71d1f82001bdaaa76", "Хрустящие минеральные кольца", "main", "mineral_rings", 808, 689, 609, 986, 300),
		ingredient("61c0c5a71d1f82001bdaaa72", "Соус Spicy-X", "sauce", "sauce-02", 30, 20, 40, 30, 90),
		ingredient("61c0c5a71d1f82001bdaaa73", "Соус фирменный Space Sauce", "sauce", "sauce-04", 50, 22, 11, 14, 80),
		ingredient("61c0c5a71d1f82001bdaaa74", "Соус традиционный галактический", "sauce", "sauce-03", 42, 24, 42, 99, 15),
		ingredient("61c0c5a71d1f82001bdaaa75", "Соус с шипами Антарианского плоскоходца", "sauce", "sauce-01", 101, 99, 100, 100, 88),
	}
}
