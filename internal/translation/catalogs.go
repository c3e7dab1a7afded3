package translation

// Catalogs keyed by language, then by English source string. English needs
// no catalog. Missing entries fall back to the source text. Keys must match
// the emitted strings verbatim, placeholders included.
var catalogs = map[string]map[string]string{
	"ru": {
		// Shared buttons and labels.
		"Take it":       "Забрать",
		"Info":          "Подробнее",
		"Less":          "Короче",
		"🌍 Map":         "🌍 Карта",
		"Approve":       "Подтвердить",
		"Reject":        "Отклонить",
		"Decline":       "Отклонить",
		"Back":          "Назад",
		"Cancel":        "Отмена",
		"Confirm ✅":     "Подтверждаю ✅",
		"Yes ✅":         "Да ✅",
		"Yes, delete":   "Да, удалить",
		"Change 📍":      "Изменить 📍",
		"Later ⏰":       "Позже ⏰",
		"⬅️ Back":       "⬅️ Назад",
		"❌ Cancel":      "❌ Отмена",
		"❌ Delete phone": "❌ Удалить телефон",
		"📞 Send phone":  "📞 Отправить телефон",
		"📞 Phone":       "📞 Телефон",
		"✏️ Name":       "✏️ Имя",
		"🌱 Social status": "🌱 Социальный статус",
		"🌐 Language":    "🌐 Язык",
		"🗂 My info":     "🗂 Моя информация",
		"🗑 Delete my profile": "🗑 Удалить мой профиль",
		"📋 View all messages": "📋 Все сообщения",
		"View all messages":   "Все сообщения",
		"🚫 Deactivate":        "🚫 Снять с публикации",
		"🤝 Food is handed over": "🤝 Еда передана",
		"⏰ Set time and send":   "⏰ Указать время и отправить",
		"Change name":         "Изменить название",
		"Change location":     "Изменить город",
		"Change address":      "Изменить адрес",
		"Change map position": "Изменить точку на карте",
		"Change phone":        "Изменить телефон",
		"Other":               "Другое",

		// Listing status words.
		"open":      "открыто",
		"requested": "запрошено",
		"approved":  "подтверждено",
		"taken":     "забрано",

		// Social statuses.
		"Big family": "Многодетная семья",
		"Disability": "Инвалидность",
		"Homeless":   "Бездомный",
		"Hard times": "Трудные времена",
		"Emigrant":   "Эмигрант",

		// Shared texts.
		"Choose the bot language:":     "Выберите язык бота:",
		"The language is set.":         "Язык установлен.",
		"Sorry, something went wrong.": "Извините, что-то пошло не так.",
		"Location: %s":                 "Город: %s",
		"Phone: %s\n":                  "Телефон: %s\n",
		"Telegram: @%s\n":              "Telegram: @%s\n",
		"\nPhone: %s":                  "\nТелефон: %s",
		"\nTime: %s":                   "\nВремя: %s",
		"New user":                     "Новый пользователь",
		"User @%s":                     "Пользователь @%s",
		"Social status: %s":            "Социальный статус: %s",
		"No contact info was provided.\n":   "Контактная информация не указана.\n",
		"Restaurant name: %s\nAddress: %s":  "Название заведения: %s\nАдрес: %s",
		"The message is no longer relevant": "Сообщение больше не актуально",

		// Supply onboarding and profile.
		"Hello! I will post the food you share. To start, enter the name of your place:": "Здравствуйте! Я буду публиковать еду, которой вы делитесь. Для начала введите название вашего заведения:",
		"Where are you located?":                                  "Где вы находитесь?",
		"Please, enter the address of the place:":                 "Пожалуйста, введите адрес заведения:",
		"Is this where people should come for the food?":          "Сюда людям приходить за едой?",
		"I could not find the address on the map. Send your location, please.": "Я не смог найти адрес на карте. Отправьте вашу геопозицию, пожалуйста.",
		"Send your location, please.":                             "Отправьте вашу геопозицию, пожалуйста.",
		"The location is saved.":                                  "Геопозиция сохранена.",
		"Enter or send your contact phone number, please:":        "Введите или отправьте контактный номер телефона, пожалуйста:",
		"Enter or send the new phone number:":                     "Введите или отправьте новый номер телефона:",
		"The phone number doesn't look right. Try again, please:": "Номер телефона выглядит неправильно. Попробуйте ещё раз, пожалуйста:",
		"The phone number is removed.":                            "Номер телефона удалён.",
		"Thank you! We will check your information and let you know when you can start posting.": "Спасибо! Мы проверим вашу информацию и сообщим, когда вы сможете начать публиковать.",
		"Enter the new name of your place:":                       "Введите новое название вашего заведения:",
		"Enter the new address of the place:":                     "Введите новый адрес заведения:",
		"Delete your profile and all your data?":                  "Удалить ваш профиль и все данные?",
		"Your profile was removed. Send /start to begin again.":   "Ваш профиль удалён. Отправьте /start, чтобы начать заново.",

		// Supply posting and moderation.
		"Your account is waiting for approval. We will notify you.":                "Ваш аккаунт ожидает подтверждения. Мы сообщим вам.",
		"Your account was declined. Please, contact %s for any clarifications.":    "Ваш аккаунт отклонён. Пожалуйста, обратитесь к %s за разъяснениями.",
		"Your account is approved!":                                                "Ваш аккаунт подтверждён!",
		"Enter the description of the food and when to take it, and I will send it to people:": "Введите описание еды и когда её забрать, и я отправлю это людям:",
		"Your message so far:\n\n%s\n\nAdd more lines or continue.":                "Ваше сообщение сейчас:\n\n%s\n\nДобавьте ещё строки или продолжайте.",
		"When will the food be available? (for example: today 18:00-20:00)":        "Когда можно будет забрать еду? (например: сегодня 18:00-20:00)",
		"Posting requires your city. Please, choose it in your info first.":        "Для публикации нужен ваш город. Пожалуйста, сначала выберите его в вашей информации.",
		"Information is sent.":                                                     "Информация отправлена.",
		"The message is discarded.":                                                "Сообщение удалено.",
		"The message is deactivated.":                                              "Сообщение снято с публикации.",
		"The message cannot be deactivated anymore.":                               "Сообщение уже нельзя снять с публикации.",
		"Your messages:":                                                           "Ваши сообщения:",
		"You have no messages in the last days.":                                   "За последние дни у вас нет сообщений.",
		"This request is no longer pending.":                                       "Эта заявка уже не ожидает решения.",
		"The request is approved.":                                                 "Заявка подтверждена.",
		"The request is rejected and your message is opened again.":                "Заявка отклонена, и ваше сообщение снова открыто.",
		"Please, describe shortly why you are rejecting the request:":              "Пожалуйста, коротко опишите, почему вы отклоняете заявку:",
		"Great, the handover is recorded. Thank you!":                              "Отлично, передача записана. Спасибо!",
		"%s will take the food.\n":                                                 "%s заберёт еду.\n",
		"%s\n\nYour message was:\n\n%s":                                            "%s\n\nВаше сообщение было:\n\n%s",
		"%s wants to join as a supplier. Provided description is:\n\n%s":           "%s хочет присоединиться как заведение. Указанное описание:\n\n%s",
		"%s was APPROVED as a supplier. Provided description was:\n\n%s\n\nDB id: %s": "%s ПОДТВЕРЖДЁН как заведение. Указанное описание:\n\n%s\n\nDB id: %s",
		"%s was DECLINED as a supplier. Provided description was:\n\n%s\n\nDB id: %s": "%s ОТКЛОНЁН как заведение. Указанное описание:\n\n%s\n\nDB id: %s",

		// Demand flow.
		"Hello! When someone shares food nearby, I will send it to you here.": "Здравствуйте! Когда кто-то рядом поделится едой, я пришлю это вам сюда.",
		"When someone shares food, I will send it to you here. You don't need to do anything.": "Когда кто-то поделится едой, я пришлю это вам сюда. Вам ничего не нужно делать.",
		"OK! When someone shares food, I will send it to you here.": "ОК! Когда кто-то поделится едой, я пришлю это вам сюда.",
		"%s can share the following:\n%s":                           "%s может поделиться:\n%s",
		"You are requesting:\n%s\n------\nThe supplier will see:\n\n%s": "Вы запрашиваете:\n%s\n------\nЗаведение увидит:\n\n%s",
		"Done! The supplier will confirm your request soon.":        "Готово! Заведение скоро подтвердит вашу заявку.",
		"SOMEONE HAS ALREADY TAKEN IT!\n\n%s":                       "КТО-ТО УЖЕ ЗАБРАЛ ЭТО!\n\n%s",
		"You've already taken it.\n\n%s":                            "Вы уже забрали это.\n\n%s",
		"You've booked this":                                        "Вы забронировали это",
		"%s is waiting for you":                                     "%s ждёт вас",
		"Your request was approved":                                 "Ваша заявка подтверждена",
		"Your request was rejected with the following words:\n%s\n\nRequest was:\n%s": "Ваша заявка отклонена со словами:\n%s\n\nЗаявка была:\n%s",
		"%s marked the food as handed over. Enjoy!":                 "%s отметил, что еда передана. Приятного аппетита!",
		"The supplier has no confirmed position on the map.":        "У заведения нет подтверждённой точки на карте.",
		"What is your name?":                                        "Как вас зовут?",
		"Which of these describes you best?":                        "Что из этого описывает вас лучше всего?",
		"Enter or send the phone number the supplier can reach you at:": "Введите или отправьте номер телефона, по которому с вами можно связаться:",
		"Share my Telegram username": "Показывать мой ник в Telegram",
		"Hide my Telegram username":  "Скрывать мой ник в Telegram",
	},
	"be": {
		"Take it":        "Забраць",
		"Info":           "Падрабязней",
		"Less":           "Карацей",
		"🌍 Map":          "🌍 Мапа",
		"Back":           "Назад",
		"⬅️ Back":        "⬅️ Назад",
		"Cancel":         "Адмена",
		"Confirm ✅":      "Пацвярджаю ✅",
		"✏️ Name":        "✏️ Імя",
		"📞 Phone":        "📞 Тэлефон",
		"🌱 Social status": "🌱 Сацыяльны статус",
		"❌ Delete phone": "❌ Выдаліць тэлефон",
		"📞 Send phone":   "📞 Адправіць тэлефон",
		"Big family":     "Шматдзетная сям'я",
		"Disability":     "Інваліднасць",
		"Homeless":       "Бяздомны",
		"Hard times":     "Цяжкія часы",
		"Emigrant":       "Эмігрант",
		"Other":          "Іншае",
		"Choose the bot language:":     "Выберыце мову бота:",
		"Sorry, something went wrong.": "Прабачце, нешта пайшло не так.",
		"Social status: %s":            "Сацыяльны статус: %s",
		"Phone: %s\n":                  "Тэлефон: %s\n",
		"\nTime: %s":                   "\nЧас: %s",
		"%s can share the following:\n%s":  "%s можа падзяліцца:\n%s",
		"%s is waiting for you":            "%s чакае вас",
		"The message is no longer relevant": "Паведамленне больш не актуальнае",
		"You've booked this":                "Вы забраніравалі гэта",
		"SOMEONE HAS ALREADY TAKEN IT!\n\n%s": "НЕХТА ЎЖО ЗАБРАЎ ГЭТА!\n\n%s",
		"You've already taken it.\n\n%s":      "Вы ўжо забралі гэта.\n\n%s",
		"Done! The supplier will confirm your request soon.": "Гатова! Установа хутка пацвердзіць вашу заяўку.",
		"What is your name?":                 "Як вас завуць?",
		"Which of these describes you best?": "Што з гэтага апісвае вас лепш за ўсё?",
		"Enter or send the phone number the supplier can reach you at:": "Увядзіце або адпраўце нумар тэлефона, па якім з вамі можна звязацца:",
		"The phone number doesn't look right. Try again, please:":       "Нумар тэлефона выглядае няправільна. Паспрабуйце яшчэ раз, калі ласка:",
		"When someone shares food, I will send it to you here. You don't need to do anything.": "Калі хтосьці падзеліцца едой, я прышлю гэта вам сюды. Вам нічога не трэба рабіць.",
		"Hello! When someone shares food nearby, I will send it to you here.": "Вітаю! Калі хтосьці побач падзеліцца едой, я прышлю гэта вам сюды.",
		"Your request was approved": "Ваша заяўка пацверджана",
		"Your request was rejected with the following words:\n%s\n\nRequest was:\n%s": "Ваша заяўка адхілена з такімі словамі:\n%s\n\nЗаяўка была:\n%s",
		"%s marked the food as handed over. Enjoy!":          "%s адзначыў, што еда перададзена. Смачна есці!",
		"The supplier has no confirmed position on the map.": "Установа не мае пацверджанай кропкі на мапе.",
		"Restaurant name: %s\nAddress: %s":                   "Назва ўстановы: %s\nАдрас: %s",
		"You are requesting:\n%s\n------\nThe supplier will see:\n\n%s": "Вы запытваеце:\n%s\n------\nУстанова ўбачыць:\n\n%s",
		"Share my Telegram username": "Паказваць мой нік у Telegram",
		"Hide my Telegram username":  "Схаваць мой нік у Telegram",
	},
	"uk": {
		"Take it":        "Забрати",
		"Info":           "Детальніше",
		"Less":           "Коротше",
		"🌍 Map":          "🌍 Мапа",
		"Back":           "Назад",
		"⬅️ Back":        "⬅️ Назад",
		"Cancel":         "Скасувати",
		"Confirm ✅":      "Підтверджую ✅",
		"✏️ Name":        "✏️ Ім'я",
		"📞 Phone":        "📞 Телефон",
		"🌱 Social status": "🌱 Соціальний статус",
		"❌ Delete phone": "❌ Видалити телефон",
		"📞 Send phone":   "📞 Надіслати телефон",
		"Big family":     "Багатодітна сім'я",
		"Disability":     "Інвалідність",
		"Homeless":       "Безпритульний",
		"Hard times":     "Скрутні часи",
		"Emigrant":       "Емігрант",
		"Other":          "Інше",
		"Choose the bot language:":     "Оберіть мову бота:",
		"Sorry, something went wrong.": "Вибачте, щось пішло не так.",
		"Social status: %s":            "Соціальний статус: %s",
		"Phone: %s\n":                  "Телефон: %s\n",
		"\nTime: %s":                   "\nЧас: %s",
		"%s can share the following:\n%s":  "%s може поділитися:\n%s",
		"%s is waiting for you":            "%s чекає на вас",
		"The message is no longer relevant": "Повідомлення більше не актуальне",
		"You've booked this":                "Ви забронювали це",
		"SOMEONE HAS ALREADY TAKEN IT!\n\n%s": "ХТОСЬ УЖЕ ЗАБРАВ ЦЕ!\n\n%s",
		"You've already taken it.\n\n%s":      "Ви вже забрали це.\n\n%s",
		"Done! The supplier will confirm your request soon.": "Готово! Заклад скоро підтвердить вашу заявку.",
		"What is your name?":                 "Як вас звати?",
		"Which of these describes you best?": "Що з цього описує вас найкраще?",
		"Enter or send the phone number the supplier can reach you at:": "Введіть або надішліть номер телефону, за яким з вами можна зв'язатися:",
		"The phone number doesn't look right. Try again, please:":       "Номер телефону виглядає неправильно. Спробуйте ще раз, будь ласка:",
		"When someone shares food, I will send it to you here. You don't need to do anything.": "Коли хтось поділиться їжею, я надішлю це вам сюди. Вам нічого не треба робити.",
		"Hello! When someone shares food nearby, I will send it to you here.": "Вітаю! Коли хтось поруч поділиться їжею, я надішлю це вам сюди.",
		"Your request was approved": "Вашу заявку підтверджено",
		"Your request was rejected with the following words:\n%s\n\nRequest was:\n%s": "Вашу заявку відхилено з такими словами:\n%s\n\nЗаявка була:\n%s",
		"%s marked the food as handed over. Enjoy!":          "%s позначив, що їжу передано. Смачного!",
		"The supplier has no confirmed position on the map.": "Заклад не має підтвердженої точки на мапі.",
		"Restaurant name: %s\nAddress: %s":                   "Назва закладу: %s\nАдреса: %s",
		"You are requesting:\n%s\n------\nThe supplier will see:\n\n%s": "Ви запитуєте:\n%s\n------\nЗаклад побачить:\n\n%s",
		"Share my Telegram username": "Показувати мій нік у Telegram",
		"Hide my Telegram username":  "Приховати мій нік у Telegram",
	},
	"pl": {
		"Take it":        "Odbiorę",
		"Info":           "Szczegóły",
		"Less":           "Mniej",
		"🌍 Map":          "🌍 Mapa",
		"Back":           "Wstecz",
		"⬅️ Back":        "⬅️ Wstecz",
		"Cancel":         "Anuluj",
		"Confirm ✅":      "Potwierdzam ✅",
		"✏️ Name":        "✏️ Imię",
		"📞 Phone":        "📞 Telefon",
		"🌱 Social status": "🌱 Status społeczny",
		"❌ Delete phone": "❌ Usuń telefon",
		"📞 Send phone":   "📞 Wyślij telefon",
		"Big family":     "Rodzina wielodzietna",
		"Disability":     "Niepełnosprawność",
		"Homeless":       "Osoba bezdomna",
		"Hard times":     "Trudna sytuacja",
		"Emigrant":       "Emigrant",
		"Other":          "Inne",
		"Choose the bot language:":     "Wybierz język bota:",
		"Sorry, something went wrong.": "Przepraszamy, coś poszło nie tak.",
		"Social status: %s":            "Status społeczny: %s",
		"Phone: %s\n":                  "Telefon: %s\n",
		"\nTime: %s":                   "\nCzas: %s",
		"%s can share the following:\n%s":  "%s może się podzielić:\n%s",
		"%s is waiting for you":            "%s czeka na ciebie",
		"The message is no longer relevant": "Wiadomość jest już nieaktualna",
		"You've booked this":                "Zarezerwowano dla ciebie",
		"SOMEONE HAS ALREADY TAKEN IT!\n\n%s": "KTOŚ JUŻ TO ODEBRAŁ!\n\n%s",
		"You've already taken it.\n\n%s":      "Już to odebrałeś.\n\n%s",
		"Done! The supplier will confirm your request soon.": "Gotowe! Lokal wkrótce potwierdzi twoją prośbę.",
		"What is your name?":                 "Jak masz na imię?",
		"Which of these describes you best?": "Co najlepiej cię opisuje?",
		"Enter or send the phone number the supplier can reach you at:": "Podaj lub wyślij numer telefonu, pod którym można się z tobą skontaktować:",
		"The phone number doesn't look right. Try again, please:":       "Numer telefonu wygląda niepoprawnie. Spróbuj jeszcze raz:",
		"When someone shares food, I will send it to you here. You don't need to do anything.": "Gdy ktoś podzieli się jedzeniem, prześlę to tutaj. Nie musisz nic robić.",
		"Hello! When someone shares food nearby, I will send it to you here.": "Cześć! Gdy ktoś w pobliżu podzieli się jedzeniem, prześlę to tutaj.",
		"Your request was approved": "Twoja prośba została potwierdzona",
		"Your request was rejected with the following words:\n%s\n\nRequest was:\n%s": "Twoja prośba została odrzucona z uzasadnieniem:\n%s\n\nProśba dotyczyła:\n%s",
		"%s marked the food as handed over. Enjoy!":          "%s oznaczył jedzenie jako przekazane. Smacznego!",
		"The supplier has no confirmed position on the map.": "Lokal nie ma potwierdzonej pozycji na mapie.",
		"Restaurant name: %s\nAddress: %s":                   "Nazwa lokalu: %s\nAdres: %s",
		"You are requesting:\n%s\n------\nThe supplier will see:\n\n%s": "Prosisz o:\n%s\n------\nLokal zobaczy:\n\n%s",
		"Share my Telegram username": "Pokazuj mój nick w Telegramie",
		"Hide my Telegram username":  "Ukryj mój nick w Telegramie",
	},
	"lt": {
		"Take it":        "Paimsiu",
		"Info":           "Daugiau",
		"Less":           "Mažiau",
		"🌍 Map":          "🌍 Žemėlapis",
		"Back":           "Atgal",
		"⬅️ Back":        "⬅️ Atgal",
		"Cancel":         "Atšaukti",
		"Confirm ✅":      "Patvirtinu ✅",
		"✏️ Name":        "✏️ Vardas",
		"📞 Phone":        "📞 Telefonas",
		"🌱 Social status": "🌱 Socialinė padėtis",
		"❌ Delete phone": "❌ Pašalinti telefoną",
		"📞 Send phone":   "📞 Siųsti telefoną",
		"Big family":     "Daugiavaikė šeima",
		"Disability":     "Negalia",
		"Homeless":       "Benamis",
		"Hard times":     "Sunkus laikotarpis",
		"Emigrant":       "Emigrantas",
		"Other":          "Kita",
		"Choose the bot language:":     "Pasirinkite boto kalbą:",
		"Sorry, something went wrong.": "Atsiprašome, kažkas nepavyko.",
		"Social status: %s":            "Socialinė padėtis: %s",
		"Phone: %s\n":                  "Telefonas: %s\n",
		"\nTime: %s":                   "\nLaikas: %s",
		"%s can share the following:\n%s":  "%s gali pasidalinti:\n%s",
		"%s is waiting for you":            "%s jūsų laukia",
		"The message is no longer relevant": "Žinutė nebeaktuali",
		"You've booked this":                "Jūs tai rezervavote",
		"SOMEONE HAS ALREADY TAKEN IT!\n\n%s": "KAŽKAS JAU TAI PAĖMĖ!\n\n%s",
		"You've already taken it.\n\n%s":      "Jūs jau tai paėmėte.\n\n%s",
		"Done! The supplier will confirm your request soon.": "Atlikta! Įstaiga netrukus patvirtins jūsų užklausą.",
		"What is your name?":                 "Koks jūsų vardas?",
		"Which of these describes you best?": "Kas jus geriausiai apibūdina?",
		"Enter or send the phone number the supplier can reach you at:": "Įveskite arba atsiųskite telefono numerį, kuriuo su jumis galima susisiekti:",
		"The phone number doesn't look right. Try again, please:":       "Telefono numeris atrodo neteisingas. Bandykite dar kartą:",
		"When someone shares food, I will send it to you here. You don't need to do anything.": "Kai kas nors pasidalins maistu, atsiųsiu tai jums čia. Jums nieko daryti nereikia.",
		"Hello! When someone shares food nearby, I will send it to you here.": "Sveiki! Kai kas nors netoliese pasidalins maistu, atsiųsiu tai jums čia.",
		"Your request was approved": "Jūsų užklausa patvirtinta",
		"Your request was rejected with the following words:\n%s\n\nRequest was:\n%s": "Jūsų užklausa atmesta su tokiais žodžiais:\n%s\n\nUžklausa buvo:\n%s",
		"%s marked the food as handed over. Enjoy!":          "%s pažymėjo, kad maistas perduotas. Skanaus!",
		"The supplier has no confirmed position on the map.": "Įstaiga neturi patvirtintos vietos žemėlapyje.",
		"Restaurant name: %s\nAddress: %s":                   "Įstaigos pavadinimas: %s\nAdresas: %s",
		"You are requesting:\n%s\n------\nThe supplier will see:\n\n%s": "Jūs prašote:\n%s\n------\nĮstaiga matys:\n\n%s",
		"Share my Telegram username": "Rodyti mano Telegram vardą",
		"Hide my Telegram username":  "Slėpti mano Telegram vardą",
	},
}
